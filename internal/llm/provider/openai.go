package provider

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/openai"
)

// Endpoints and default models for the OpenAI-compatible providers. Grok
// and DeepSeek speak the same chat-completions dialect, so all three ride
// the openai component with a BaseURL override.
const (
	grokBaseURL     = "https://api.x.ai/v1"
	deepseekBaseURL = "https://api.deepseek.com/v1"

	defaultOpenAIModel   = "gpt-4o-mini"
	defaultGrokModel     = "grok-2-latest"
	defaultDeepSeekModel = "deepseek-chat"
)

func newOpenAICompatible(ctx context.Context, name string, cfg Config) (Invoker, error) {
	modelName := cfg.Model
	baseURL := cfg.BaseURL
	switch name {
	case NameGrok:
		if modelName == "" {
			modelName = defaultGrokModel
		}
		if baseURL == "" {
			baseURL = grokBaseURL
		}
	case NameDeepSeek:
		if modelName == "" {
			modelName = defaultDeepSeekModel
		}
		if baseURL == "" {
			baseURL = deepseekBaseURL
		}
	default:
		if modelName == "" {
			modelName = defaultOpenAIModel
		}
	}

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		Model:   modelName,
		BaseURL: baseURL,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return &chatInvoker{name: name, chatModel: chatModel, timeout: cfg.Timeout}, nil
}
