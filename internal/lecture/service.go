// Package lecture orchestrates one request: acquire content from the
// uploaded document, generate a script, synthesize narration, persist
// the audio, and clean up everything temporary.
package lecture

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/nadavsuissa/AiTran/internal/script"
	"github.com/nadavsuissa/AiTran/internal/tts"
	"github.com/nadavsuissa/AiTran/internal/upload"
)

// Result is what a successful request hands back to the caller. The
// audio artifact is the only state that outlives the request.
type Result struct {
	Script      string
	AudioPath   string
	DownloadURL string
}

type Service struct {
	store       *upload.Store
	scripts     script.Provider
	synth       tts.Provider
	downloadDir string
}

func NewService(store *upload.Store, scripts script.Provider, synth tts.Provider, downloadDir string) *Service {
	return &Service{
		store:       store,
		scripts:     scripts,
		synth:       synth,
		downloadDir: downloadDir,
	}
}

// Process runs the full pipeline for one stored upload. The temp file
// and any remote handles the script backend created are released on
// every exit path; release failures are logged, never returned.
func (s *Service) Process(ctx context.Context, doc *upload.Document) (*Result, error) {
	guards := NewGuards()
	defer guards.Release(ctx)

	guards.Add("temp upload", func(context.Context) error {
		return s.store.Remove(doc.Path)
	})

	scriptText, err := s.scripts.GenerateScript(ctx, doc, guards)
	if err != nil {
		return nil, fmt.Errorf("generate script: %w", err)
	}
	if strings.TrimSpace(scriptText) == "" {
		return nil, fmt.Errorf("script backend %s returned an empty script", s.scripts.Name())
	}

	audio, err := s.synth.Synthesize(ctx, tts.SynthesisRequest{Input: scriptText})
	if err != nil {
		return nil, fmt.Errorf("synthesize narration: %w", err)
	}
	if len(audio.Audio) == 0 {
		return nil, fmt.Errorf("tts backend %s returned no audio", s.synth.Name())
	}

	name := uuid.NewString() + ".mp3"
	path := filepath.Join(s.downloadDir, name)
	if err := os.WriteFile(path, audio.Audio, 0o644); err != nil {
		return nil, fmt.Errorf("persist audio: %w", err)
	}

	slog.Info("lecture generated",
		"document", doc.OriginalName,
		"backend", s.scripts.Name(),
		"script_chars", len(scriptText),
		"audio_bytes", len(audio.Audio),
		"artifact", name,
	)

	return &Result{
		Script:      scriptText,
		AudioPath:   path,
		DownloadURL: "/downloads/" + name,
	}, nil
}
