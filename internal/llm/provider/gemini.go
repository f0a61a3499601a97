package provider

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

func newGemini(ctx context.Context, cfg Config) (Invoker, error) {
	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client: client,
		Model:  modelName,
	})
	if err != nil {
		return nil, err
	}
	return &chatInvoker{name: NameGemini, chatModel: chatModel, timeout: cfg.Timeout}, nil
}
