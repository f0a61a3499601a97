package protocol

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"contexthub/internal/database"
	"contexthub/internal/llm"
	"contexthub/internal/llm/provider"
	"contexthub/internal/models"
	"contexthub/internal/services"
)

type stubInvoker struct{}

func (stubInvoker) Name() string { return "gemini" }

func (stubInvoker) Invoke(_ context.Context, method string, params provider.Params) provider.Result {
	if method != provider.MethodAsk {
		return provider.Result{Error: "unsupported method"}
	}
	return provider.Result{Content: "stub reply"}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
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
	router := llm.NewRouter(map[string]provider.Invoker{"gemini": stubInvoker{}}, svc.Contexts, zap.NewNop())
	return NewServer(router, svc.Sessions, svc.Contexts, zap.NewNop())
}

func runLines(t *testing.T, server *Server, lines ...string) []Response {
	t.Helper()
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out bytes.Buffer
	require.NoError(t, server.Run(context.Background(), in, &out))

	var responses []Response
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp Response
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp))
		responses = append(responses, resp)
	}
	require.NoError(t, scanner.Err())
	return responses
}

func TestServer_UnknownOperation(t *testing.T) {
	server := newTestServer(t)
	responses := runLines(t, server,
		`{"operation":"launch_rockets","correlation_id":"c1"}`)

	require.Len(t, responses, 1)
	assert.Equal(t, "c1", responses[0].CorrelationID)
	assert.Contains(t, responses[0].Error, "unknown operation")
}

func TestServer_MalformedRequestKeepsServing(t *testing.T) {
	server := newTestServer(t)
	responses := runLines(t, server,
		`{not json`,
		`{"operation":"get_context","parameters":{"session_id":"nope"},"correlation_id":"c2"}`)

	require.Len(t, responses, 2)
	assert.Contains(t, responses[0].Error, "malformed request")
	assert.Equal(t, "c2", responses[1].CorrelationID)
	assert.Empty(t, responses[1].Error)
}

func TestServer_RouteRequestUnknownProvider(t *testing.T) {
	server := newTestServer(t)
	responses := runLines(t, server,
		`{"operation":"route_request","parameters":{"ai_name":"nonexistent","prompt":"hi"},"correlation_id":"c3"}`)

	require.Len(t, responses, 1)
	assert.Equal(t, "c3", responses[0].CorrelationID)
	assert.Contains(t, responses[0].Error, "unknown provider")
}

func TestServer_SessionAppendContextFlow(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	// Resolve a session for the project.
	resp := server.Dispatch(ctx, mustRequest(t, OpGetSession, map[string]interface{}{
		"ai_name":           "gemini",
		"project_path":      "/tmp/proj",
		"create_if_missing": true,
	}, "s1"))
	require.Empty(t, resp.Error)
	assert.Equal(t, "s1", resp.CorrelationID)
	sessionResult := resp.Result.(map[string]interface{})
	require.Equal(t, true, sessionResult["found"])
	sess := sessionResult["session"].(*models.AISession)
	require.NotEmpty(t, sess.SessionID)

	// Append one user message and the routed reply.
	resp = server.Dispatch(ctx, mustRequest(t, OpAppendMessage, map[string]interface{}{
		"session_id": sess.SessionID,
		"role":       models.RoleUser,
		"content":    "My favorite number is 42.",
	}, "s2"))
	require.Empty(t, resp.Error)

	resp = server.Dispatch(ctx, mustRequest(t, OpRouteRequest, map[string]interface{}{
		"ai_name":    "gemini",
		"prompt":     "What is my favorite number?",
		"session_id": sess.SessionID,
	}, "s3"))
	require.Empty(t, resp.Error)
	routeResult := resp.Result.(map[string]string)
	assert.Equal(t, "stub reply", routeResult["content"])

	resp = server.Dispatch(ctx, mustRequest(t, OpAppendMessage, map[string]interface{}{
		"session_id": sess.SessionID,
		"role":       models.RoleAssistant,
		"content":    routeResult["content"],
	}, "s4"))
	require.Empty(t, resp.Error)

	// Read the history back: two messages, submission order, correct roles.
	resp = server.Dispatch(ctx, mustRequest(t, OpGetContext, map[string]interface{}{
		"session_id": sess.SessionID,
	}, "s5"))
	require.Empty(t, resp.Error)
	contextResult := resp.Result.(map[string]interface{})
	require.Equal(t, true, contextResult["found"])
	contextValue := contextResult["context"].(*models.Context)
	require.Len(t, contextValue.Messages, 2)
	assert.Equal(t, models.RoleUser, contextValue.Messages[0].Role)
	assert.Equal(t, "My favorite number is 42.", contextValue.Messages[0].Content)
	assert.Equal(t, models.RoleAssistant, contextValue.Messages[1].Role)
	assert.Equal(t, "stub reply", contextValue.Messages[1].Content)
}

func TestServer_ClearContextAndProjectInfo(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	resp := server.Dispatch(ctx, mustRequest(t, OpGetSession, map[string]interface{}{
		"ai_name":           "gemini",
		"project_path":      "/tmp/proj",
		"create_if_missing": true,
	}, "c1"))
	require.Empty(t, resp.Error)

	resp = server.Dispatch(ctx, mustRequest(t, OpClearContext, map[string]interface{}{
		"ai_name":      "gemini",
		"project_path": "/tmp/proj",
		"cleared_by":   "tester",
	}, "c2"))
	require.Empty(t, resp.Error)

	resp = server.Dispatch(ctx, mustRequest(t, OpProjectInfo, map[string]interface{}{
		"project_path": "/tmp/proj",
	}, "c3"))
	require.Empty(t, resp.Error)
	infoResult := resp.Result.(map[string]interface{})
	require.Equal(t, true, infoResult["found"])
	info := infoResult["project"].(*models.ProjectInfo)
	assert.Equal(t, int64(1), info.TotalClears)
}

func TestServer_GetContextAbsent(t *testing.T) {
	server := newTestServer(t)

	resp := server.Dispatch(context.Background(), mustRequest(t, OpGetContext, map[string]interface{}{
		"session_id": "no-such-session",
	}, "a1"))
	require.Empty(t, resp.Error)
	result := resp.Result.(map[string]interface{})
	assert.Equal(t, false, result["found"])
}

func mustRequest(t *testing.T, operation string, params map[string]interface{}, correlationID string) Request {
	t.Helper()
	raw, err := json.Marshal(params)
	require.NoError(t, err)
	return Request{Operation: operation, Parameters: raw, CorrelationID: correlationID}
}
