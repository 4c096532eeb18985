package script

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/nadavsuissa/AiTran/internal/config"
	"github.com/nadavsuissa/AiTran/internal/upload"
)

// AnthropicGenerator produces a lecture script through the Anthropic
// Messages API over locally extracted document text.
type AnthropicGenerator struct {
	client anthropic.Client
	cfg    config.ScriptConfig
}

func NewAnthropicGenerator(cfg config.ScriptConfig) *AnthropicGenerator {
	return &AnthropicGenerator{
		client: anthropic.NewClient(option.WithAPIKey(cfg.AnthropicKey)),
		cfg:    cfg,
	}
}

func (g *AnthropicGenerator) Name() string { return "anthropic" }

func (g *AnthropicGenerator) GenerateScript(ctx context.Context, doc *upload.Document, _ Janitor) (string, error) {
	content, err := loadContent(doc, g.cfg.MaxContentChars)
	if err != nil {
		return "", err
	}

	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.cfg.Model),
		MaxTokens: 4096,
		System: []anthropic.TextBlockParam{
			{Text: lectureInstructions(g.cfg.Language)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(content)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic chat: %w", err)
	}

	var parts []Part
	for _, block := range resp.Content {
		if block.Type == "text" {
			parts = append(parts, TextPart(block.Text))
		}
	}

	scriptText, _ := Collect(parts)
	if scriptText == "" {
		return "", fmt.Errorf("anthropic returned no script text")
	}
	return scriptText, nil
}
