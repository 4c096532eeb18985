package script

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nadavsuissa/AiTran/internal/config"
	"github.com/nadavsuissa/AiTran/internal/upload"
)

// AssistantGenerator uploads the raw document to OpenAI and drives an
// assistant/thread/run session over it, so no local text extraction is
// needed. Every remote resource it creates is registered on the guard
// stack for deletion after the request.
type AssistantGenerator struct {
	client *openai.Client
	cfg    config.ScriptConfig
	clock  Clock
}

func NewAssistantGenerator(cfg config.ScriptConfig) *AssistantGenerator {
	return &AssistantGenerator{
		client: openai.NewClient(cfg.OpenAIKey),
		cfg:    cfg,
		clock:  realClock{},
	}
}

func (g *AssistantGenerator) Name() string { return "assistant" }

func (g *AssistantGenerator) GenerateScript(ctx context.Context, doc *upload.Document, guards Janitor) (string, error) {
	file, err := g.client.CreateFile(ctx, openai.FileRequest{
		FileName: doc.OriginalName,
		FilePath: doc.Path,
		Purpose:  "assistants",
	})
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}
	guards.Add("remote file", func(ctx context.Context) error {
		return g.client.DeleteFile(ctx, file.ID)
	})

	name := "lecture-writer"
	instructions := lectureInstructions(g.cfg.Language)
	assistant, err := g.client.CreateAssistant(ctx, openai.AssistantRequest{
		Model:        g.cfg.Model,
		Name:         &name,
		Instructions: &instructions,
		Tools:        []openai.AssistantTool{{Type: openai.AssistantToolTypeFileSearch}},
	})
	if err != nil {
		return "", fmt.Errorf("create assistant: %w", err)
	}
	guards.Add("assistant", func(ctx context.Context) error {
		_, err := g.client.DeleteAssistant(ctx, assistant.ID)
		return err
	})

	thread, err := g.client.CreateThread(ctx, openai.ThreadRequest{
		Messages: []openai.ThreadMessage{
			{
				Role:    openai.ThreadMessageRoleUser,
				Content: "Write the lecture script for the attached document.",
				Attachments: []openai.ThreadAttachment{
					{
						FileID: file.ID,
						Tools:  []openai.ThreadAttachmentTool{{Type: "file_search"}},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}
	guards.Add("thread", func(ctx context.Context) error {
		_, err := g.client.DeleteThread(ctx, thread.ID)
		return err
	})

	run, err := g.client.CreateRun(ctx, thread.ID, openai.RunRequest{
		AssistantID: assistant.ID,
	})
	if err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}

	if _, err := waitForRun(ctx, g.client, thread.ID, run.ID, g.cfg.RunPollAttempts, g.cfg.RunPollInterval, g.clock); err != nil {
		return "", err
	}

	order := "asc"
	msgs, err := g.client.ListMessage(ctx, thread.ID, nil, &order, nil, nil, nil)
	if err != nil {
		return "", fmt.Errorf("list messages: %w", err)
	}

	var parts []Part
	for _, msg := range msgs.Messages {
		if msg.Role != "assistant" {
			continue
		}
		var children []Part
		for _, content := range msg.Content {
			if content.Text != nil {
				children = append(children, TextPart(content.Text.Value))
			}
		}
		parts = append(parts, Container(children...))
	}

	scriptText, _ := Collect(parts)
	if scriptText == "" {
		return "", fmt.Errorf("assistant run produced no script text")
	}
	return scriptText, nil
}
