package provider

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/claude"
)

const (
	defaultClaudeModel     = "claude-3-7-sonnet-20250219"
	defaultClaudeMaxTokens = 4096
)

func newClaude(ctx context.Context, cfg Config) (Invoker, error) {
	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultClaudeModel
	}

	chatModel, err := claude.NewChatModel(ctx, &claude.Config{
		APIKey:    cfg.APIKey,
		Model:     modelName,
		MaxTokens: defaultClaudeMaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return &chatInvoker{name: NameClaude, chatModel: chatModel, timeout: cfg.Timeout}, nil
}
