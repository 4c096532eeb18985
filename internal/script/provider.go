// Package script generates spoken-lecture scripts from uploaded
// documents through an external model provider.
package script

import (
	"context"
	"fmt"

	"github.com/nadavsuissa/AiTran/internal/config"
	"github.com/nadavsuissa/AiTran/internal/upload"
)

// Janitor registers release functions for temporary resources a backend
// acquires, such as remote file handles. Registered resources are
// released by the caller on every exit path.
type Janitor interface {
	Add(name string, release func(context.Context) error)
}

// Provider is the interface for script-generation backends.
type Provider interface {
	GenerateScript(ctx context.Context, doc *upload.Document, guards Janitor) (string, error)
	Name() string
}

// New builds the provider selected by SCRIPT_BACKEND.
func New(cfg config.ScriptConfig) (Provider, error) {
	switch cfg.Backend {
	case "openai":
		return NewOpenAIGenerator(cfg), nil
	case "anthropic":
		return NewAnthropicGenerator(cfg), nil
	case "assistant":
		return NewAssistantGenerator(cfg), nil
	default:
		return nil, fmt.Errorf("unknown script backend: %q", cfg.Backend)
	}
}
