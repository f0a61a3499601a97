// Package llm routes provider requests: it selects the adapter for a
// provider name, optionally folds stored conversation history into the
// outgoing prompt, and propagates the adapter's result verbatim.
package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"contexthub/internal/llm/provider"
	"contexthub/internal/models"
)

// ContextReader is the one slice of the context store the router needs.
type ContextReader interface {
	GetContext(ctx context.Context, sessionID string) (*models.Context, error)
}

// RouteContext carries optional per-request state. When SessionID is set,
// the session's history is folded into the prompt; otherwise the call is
// stateless.
type RouteContext struct {
	SessionID string `json:"sessionId,omitempty"`
}

// Router dispatches requests to provider adapters. The provider map is
// built once at startup and treated as immutable. The router never writes
// to the context store: recording the exchange afterwards is the caller's
// responsibility, so a caller that skips the append drops that turn from
// future context.
type Router struct {
	providers map[string]provider.Invoker
	contexts  ContextReader
	logger    *zap.Logger
}

func NewRouter(providers map[string]provider.Invoker, contexts ContextReader, logger *zap.Logger) *Router {
	return &Router{
		providers: providers,
		contexts:  contexts,
		logger:    logger,
	}
}

// Providers returns the configured provider names, for display surfaces.
func (r *Router) Providers() []string {
	return provider.Names(r.providers)
}

// Route resolves the adapter and executes the request. An unknown provider
// short-circuits before any storage access.
func (r *Router) Route(ctx context.Context, aiName, method string, params provider.Params, rc RouteContext) provider.Result {
	inv, ok := r.providers[strings.TrimSpace(strings.ToLower(aiName))]
	if !ok {
		return provider.Result{Error: fmt.Sprintf("unknown provider %q", aiName)}
	}

	if rc.SessionID != "" {
		history, err := r.contexts.GetContext(ctx, rc.SessionID)
		if err != nil {
			return provider.Result{Error: fmt.Sprintf("load context: %v", err)}
		}
		if history != nil && len(history.Messages) > 0 {
			params.Prompt = foldTranscript(history.Messages, params.Prompt)
		}
	}

	res := inv.Invoke(ctx, method, params)
	if res.Failed() {
		r.logger.Warn("provider invocation failed",
			zap.String("provider", inv.Name()),
			zap.String("method", method),
			zap.String("error", res.Error))
	} else {
		r.logger.Debug("provider invocation ok",
			zap.String("provider", inv.Name()),
			zap.String("method", method))
	}
	return res
}

// foldTranscript prefixes the prompt with the prior turns, preserving role
// and order.
func foldTranscript(messages []models.Message, prompt string) string {
	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	for _, m := range messages {
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteByte('\n')
	}
	b.WriteString("\nCurrent request: ")
	b.WriteString(prompt)
	return b.String()
}
