package provider

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Provider names the broker knows how to construct.
const (
	NameGemini   = "gemini"
	NameGrok     = "grok"
	NameOpenAI   = "openai"
	NameDeepSeek = "deepseek"
	NameClaude   = "claude"
)

// Config describes one provider endpoint. Built once at startup and never
// mutated; the registry holds no ambient global state.
type Config struct {
	Name    string
	APIKey  string
	Model   string        // default applied per provider when empty
	BaseURL string        // OpenAI-compatible endpoints only
	Timeout time.Duration // per-invocation deadline, default 60s
}

const defaultTimeout = 60 * time.Second

// Known returns the provider names this package can construct, in display
// order.
func Known() []string {
	return []string{NameGemini, NameGrok, NameOpenAI, NameDeepSeek, NameClaude}
}

// NewRegistry builds one adapter per config. Unknown names fail
// construction; a missing API key fails the individual provider so a
// misconfigured entry is caught at startup, not at request time.
func NewRegistry(ctx context.Context, configs []Config) (map[string]Invoker, error) {
	registry := make(map[string]Invoker, len(configs))
	for _, cfg := range configs {
		name := strings.TrimSpace(strings.ToLower(cfg.Name))
		if name == "" {
			return nil, fmt.Errorf("provider config with empty name")
		}
		if _, dup := registry[name]; dup {
			return nil, fmt.Errorf("duplicate provider config %q", name)
		}
		if strings.TrimSpace(cfg.APIKey) == "" {
			return nil, fmt.Errorf("provider %q: api key is required", name)
		}
		if cfg.Timeout <= 0 {
			cfg.Timeout = defaultTimeout
		}

		var (
			inv Invoker
			err error
		)
		switch name {
		case NameOpenAI, NameGrok, NameDeepSeek:
			inv, err = newOpenAICompatible(ctx, name, cfg)
		case NameClaude:
			inv, err = newClaude(ctx, cfg)
		case NameGemini:
			inv, err = newGemini(ctx, cfg)
		default:
			return nil, fmt.Errorf("unknown provider %q", name)
		}
		if err != nil {
			return nil, fmt.Errorf("construct provider %q: %w", name, err)
		}
		registry[name] = inv
	}
	return registry, nil
}

// Names lists a registry's providers sorted for stable display.
func Names(registry map[string]Invoker) []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
