package script

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nadavsuissa/AiTran/internal/config"
	"github.com/nadavsuissa/AiTran/internal/upload"
)

// OpenAIGenerator produces a lecture script with a single chat
// completion over locally extracted document text.
type OpenAIGenerator struct {
	client *openai.Client
	cfg    config.ScriptConfig
}

func NewOpenAIGenerator(cfg config.ScriptConfig) *OpenAIGenerator {
	return &OpenAIGenerator{
		client: openai.NewClient(cfg.OpenAIKey),
		cfg:    cfg,
	}
}

func (g *OpenAIGenerator) Name() string { return "openai" }

func (g *OpenAIGenerator) GenerateScript(ctx context.Context, doc *upload.Document, _ Janitor) (string, error) {
	content, err := loadContent(doc, g.cfg.MaxContentChars)
	if err != nil {
		return "", err
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: lectureInstructions(g.cfg.Language)},
			{Role: openai.ChatMessageRoleUser, Content: content},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat: %w", err)
	}

	var parts []Part
	for _, choice := range resp.Choices {
		parts = append(parts, TextPart(choice.Message.Content))
	}

	scriptText, _ := Collect(parts)
	if scriptText == "" {
		return "", fmt.Errorf("openai returned no script text")
	}
	return scriptText, nil
}
