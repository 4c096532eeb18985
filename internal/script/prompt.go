package script

import (
	"fmt"
	"strings"

	"github.com/nadavsuissa/AiTran/internal/upload"
	"github.com/nadavsuissa/AiTran/pkg/textextract"
)

func lectureInstructions(language string) string {
	return fmt.Sprintf(
		"You are an experienced university lecturer. Write a spoken lecture script in %s "+
			"that teaches the content of the document provided by the student. Address the "+
			"listener directly, explain each idea step by step with short concrete examples, "+
			"and keep a warm, clear tone suitable for reading aloud. "+
			"Return only the script text, with no headings or stage directions.",
		language,
	)
}

// loadContent extracts the document text and caps it so the prompt
// stays within upstream request-size limits.
func loadContent(doc *upload.Document, maxChars int) (string, error) {
	extracted, err := textextract.ExtractFile(doc.Path)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", doc.OriginalName, err)
	}

	content := strings.TrimSpace(extracted.Content)
	if content == "" {
		return "", fmt.Errorf("no text could be extracted from %s", doc.OriginalName)
	}

	return capRunes(content, maxChars), nil
}

func capRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
