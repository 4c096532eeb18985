package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadavsuissa/AiTran/internal/lecture"
	"github.com/nadavsuissa/AiTran/internal/script"
	"github.com/nadavsuissa/AiTran/internal/tts"
	"github.com/nadavsuissa/AiTran/internal/upload"
)

type stubScripts struct {
	script string
	err    error
}

func (s *stubScripts) Name() string { return "stub-scripts" }

func (s *stubScripts) GenerateScript(context.Context, *upload.Document, script.Janitor) (string, error) {
	return s.script, s.err
}

type stubSynth struct {
	audio []byte
	err   error
}

func (s *stubSynth) Name() string { return "stub-tts" }

func (s *stubSynth) Synthesize(context.Context, tts.SynthesisRequest) (*tts.SynthesisResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &tts.SynthesisResult{Audio: s.audio, ContentType: "audio/mpeg"}, nil
}

type env struct {
	handler     *LectureHandler
	uploadDir   string
	downloadDir string
}

func newEnv(t *testing.T, scripts script.Provider, synth tts.Provider) *env {
	t.Helper()
	uploadDir := t.TempDir()
	downloadDir := t.TempDir()
	store := upload.NewStore(uploadDir, 1<<20)
	svc := lecture.NewService(store, scripts, synth, downloadDir)
	return &env{
		handler:     NewLectureHandler(store, svc, 1<<20),
		uploadDir:   uploadDir,
		downloadDir: downloadDir,
	}
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/process", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func dirEmpty(t *testing.T, dir string) bool {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries) == 0
}

func TestProcessHappyPath(t *testing.T) {
	audio := []byte{0xFF, 0xFB, 0x90, 0x64}
	e := newEnv(t, &stubScripts{script: "שלום עולם"}, &stubSynth{audio: audio})

	rec := httptest.NewRecorder()
	e.handler.Process(rec, multipartRequest(t, "file", "notes.txt", []byte("lecture material")))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON(t, rec)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "שלום עולם", resp["script"])

	downloadURL, _ := resp["downloadUrl"].(string)
	require.NotEmpty(t, downloadURL)
	persisted, err := os.ReadFile(filepath.Join(e.downloadDir, filepath.Base(downloadURL)))
	require.NoError(t, err)
	assert.Equal(t, audio, persisted)

	assert.True(t, dirEmpty(t, e.uploadDir), "temp upload must be removed after the request")
}

func TestProcessNoFile(t *testing.T) {
	e := newEnv(t, &stubScripts{script: "unused"}, &stubSynth{audio: []byte("unused")})

	rec := httptest.NewRecorder()
	e.handler.Process(rec, multipartRequest(t, "", "", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeJSON(t, rec)
	assert.NotEmpty(t, resp["error"])

	assert.True(t, dirEmpty(t, e.uploadDir), "rejected request must not write files")
	assert.True(t, dirEmpty(t, e.downloadDir))
}

func TestProcessInvalidForm(t *testing.T) {
	e := newEnv(t, &stubScripts{}, &stubSynth{})

	req := httptest.NewRequest(http.MethodPost, "/api/process", bytes.NewReader([]byte("not multipart")))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=broken")
	rec := httptest.NewRecorder()
	e.handler.Process(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeJSON(t, rec)
	assert.NotEmpty(t, resp["error"])
}

func TestProcessEmptyScript(t *testing.T) {
	e := newEnv(t, &stubScripts{script: ""}, &stubSynth{audio: []byte("unused")})

	rec := httptest.NewRecorder()
	e.handler.Process(rec, multipartRequest(t, "file", "notes.txt", []byte("content")))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeJSON(t, rec)
	assert.NotEmpty(t, resp["error"])

	assert.True(t, dirEmpty(t, e.uploadDir), "temp upload must be cleaned up on failure")
	assert.True(t, dirEmpty(t, e.downloadDir))
}

func TestProcessEmptyAudio(t *testing.T) {
	e := newEnv(t, &stubScripts{script: "a fine script"}, &stubSynth{err: errors.New("tts returned no audio")})

	rec := httptest.NewRecorder()
	e.handler.Process(rec, multipartRequest(t, "file", "notes.txt", []byte("content")))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeJSON(t, rec)
	assert.Contains(t, resp["error"], "no audio")

	assert.True(t, dirEmpty(t, e.downloadDir), "no artifact may be written on failure")
}

func TestProcessScriptProviderError(t *testing.T) {
	e := newEnv(t, &stubScripts{err: errors.New("run ended with status failed")}, &stubSynth{})

	rec := httptest.NewRecorder()
	e.handler.Process(rec, multipartRequest(t, "file", "notes.txt", []byte("content")))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeJSON(t, rec)
	assert.Contains(t, resp["error"], "run ended with status failed")
}
