package llm

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"contexthub/internal/database"
	"contexthub/internal/llm/provider"
	"contexthub/internal/models"
	"contexthub/internal/services"
)

// echoInvoker returns a deterministic string built from the prompt it saw.
type echoInvoker struct {
	name       string
	lastPrompt string
	result     provider.Result
}

func (e *echoInvoker) Name() string { return e.name }

func (e *echoInvoker) Invoke(_ context.Context, method string, params provider.Params) provider.Result {
	e.lastPrompt = params.Prompt
	if e.result.Content != "" || e.result.Error != "" {
		return e.result
	}
	return provider.Result{Content: fmt.Sprintf("echo(%s): %s", method, params.Prompt)}
}

// countingReader counts context-store reads so tests can assert the router
// never touched storage.
type countingReader struct {
	calls    int
	messages []models.Message
}

func (c *countingReader) GetContext(_ context.Context, sessionID string) (*models.Context, error) {
	c.calls++
	return &models.Context{SessionID: sessionID, Messages: c.messages}, nil
}

func TestRoute_UnknownProviderShortCircuits(t *testing.T) {
	reader := &countingReader{}
	router := NewRouter(map[string]provider.Invoker{}, reader, zap.NewNop())

	res := router.Route(context.Background(), "nonexistent", provider.MethodAsk,
		provider.Params{Prompt: "hi"}, RouteContext{SessionID: "sess"})

	assert.True(t, res.Failed())
	assert.Contains(t, res.Error, "unknown provider")
	assert.Equal(t, 0, reader.calls, "unknown provider must not reach the store")
}

func TestRoute_StatelessWithoutSessionID(t *testing.T) {
	echo := &echoInvoker{name: "gemini"}
	reader := &countingReader{}
	router := NewRouter(map[string]provider.Invoker{"gemini": echo}, reader, zap.NewNop())

	res := router.Route(context.Background(), "gemini", provider.MethodAsk,
		provider.Params{Prompt: "just ask"}, RouteContext{})

	require.False(t, res.Failed())
	assert.Equal(t, 0, reader.calls)
	assert.Equal(t, "just ask", echo.lastPrompt)
}

func TestRoute_FoldsTranscriptInOrder(t *testing.T) {
	echo := &echoInvoker{name: "gemini"}
	reader := &countingReader{messages: []models.Message{
		{Role: models.RoleUser, Content: "My favorite number is 42."},
		{Role: models.RoleAssistant, Content: "Noted."},
	}}
	router := NewRouter(map[string]provider.Invoker{"gemini": echo}, reader, zap.NewNop())

	res := router.Route(context.Background(), "gemini", provider.MethodAsk,
		provider.Params{Prompt: "What is my favorite number?"}, RouteContext{SessionID: "sess"})

	require.False(t, res.Failed())
	assert.Equal(t, 1, reader.calls)

	userIdx := strings.Index(echo.lastPrompt, "user: My favorite number is 42.")
	assistantIdx := strings.Index(echo.lastPrompt, "assistant: Noted.")
	promptIdx := strings.Index(echo.lastPrompt, "Current request: What is my favorite number?")
	require.GreaterOrEqual(t, userIdx, 0)
	require.Greater(t, assistantIdx, userIdx, "roles must appear in stored order")
	require.Greater(t, promptIdx, assistantIdx, "the new prompt comes last")
}

func TestRoute_PropagatesProviderErrorVerbatim(t *testing.T) {
	echo := &echoInvoker{name: "grok", result: provider.Result{Error: "grok: rate limited"}}
	router := NewRouter(map[string]provider.Invoker{"grok": echo}, &countingReader{}, zap.NewNop())

	res := router.Route(context.Background(), "grok", provider.MethodAsk,
		provider.Params{Prompt: "hi"}, RouteContext{})

	assert.Equal(t, "grok: rate limited", res.Error)
}

func TestRoute_NormalizesProviderNameCase(t *testing.T) {
	echo := &echoInvoker{name: "gemini"}
	router := NewRouter(map[string]provider.Invoker{"gemini": echo}, &countingReader{}, zap.NewNop())

	res := router.Route(context.Background(), " Gemini ", provider.MethodAsk,
		provider.Params{Prompt: "hi"}, RouteContext{})

	assert.False(t, res.Failed())
}

// Full flow: create a session, remember a fact, route with context, record
// the reply, read it all back in order.
func TestRoute_EndToEndWithDurableContext(t *testing.T) {
	ctx := context.Background()

	db, err := database.Init(database.Config{
		Path: filepath.Join(t.TempDir(), "contexthub_test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	svc := services.NewServices(db, nil, zap.NewNop())

	sess, err := svc.Sessions.GetOrCreateSession(ctx, "gemini", "/tmp/proj", true)
	require.NoError(t, err)

	_, err = svc.Contexts.AddMessage(ctx, sess.SessionID, models.RoleUser, "My favorite number is 42.", nil)
	require.NoError(t, err)

	echo := &echoInvoker{name: "gemini", result: provider.Result{Content: "Your favorite number is 42."}}
	router := NewRouter(map[string]provider.Invoker{"gemini": echo}, svc.Contexts, zap.NewNop())

	res := router.Route(ctx, "gemini", provider.MethodAsk,
		provider.Params{Prompt: "What is my favorite number?"}, RouteContext{SessionID: sess.SessionID})
	require.False(t, res.Failed())
	assert.Contains(t, echo.lastPrompt, "user: My favorite number is 42.")

	// Recording the reply is the caller's job, not the router's.
	contextValue, err := svc.Contexts.GetContext(ctx, sess.SessionID)
	require.NoError(t, err)
	require.Len(t, contextValue.Messages, 1)

	_, err = svc.Contexts.AddMessage(ctx, sess.SessionID, models.RoleAssistant, res.Content, nil)
	require.NoError(t, err)

	contextValue, err = svc.Contexts.GetContext(ctx, sess.SessionID)
	require.NoError(t, err)
	require.Len(t, contextValue.Messages, 2)
	assert.Equal(t, models.RoleUser, contextValue.Messages[0].Role)
	assert.Equal(t, models.RoleAssistant, contextValue.Messages[1].Role)
	assert.Equal(t, "Your favorite number is 42.", contextValue.Messages[1].Content)
}
