package protocol

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"contexthub/internal/llm"
	"contexthub/internal/llm/provider"
	"contexthub/internal/services"
)

const maxLineBytes = 4 * 1024 * 1024

// Server reads request envelopes line by line, dispatches them, and writes
// one response envelope per request. It carries no state of its own beyond
// the components it fronts.
type Server struct {
	router   *llm.Router
	sessions services.SessionService
	contexts services.ContextService
	logger   *zap.Logger
}

func NewServer(router *llm.Router, sessions services.SessionService, contexts services.ContextService, logger *zap.Logger) *Server {
	return &Server{
		router:   router,
		sessions: sessions,
		contexts: contexts,
		logger:   logger,
	}
}

// Run serves until in is exhausted or ctx is cancelled. Responses are
// written in request order.
func (s *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	enc := json.NewEncoder(out)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			if encErr := enc.Encode(Response{Error: fmt.Sprintf("malformed request: %v", err)}); encErr != nil {
				return encErr
			}
			continue
		}

		resp := s.Dispatch(ctx, req)
		if err := enc.Encode(resp); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// Dispatch executes one envelope. Errors always come back as error
// envelopes carrying the request's correlation id, never as a dropped
// connection.
func (s *Server) Dispatch(ctx context.Context, req Request) Response {
	result, err := s.handle(ctx, req)
	if err != nil {
		s.logger.Warn("operation failed",
			zap.String("operation", req.Operation),
			zap.String("correlation_id", req.CorrelationID),
			zap.Error(err))
		return Response{CorrelationID: req.CorrelationID, Error: err.Error()}
	}
	return Response{CorrelationID: req.CorrelationID, Result: result}
}

func (s *Server) handle(ctx context.Context, req Request) (interface{}, error) {
	switch req.Operation {
	case OpRouteRequest:
		var p routeRequestParams
		if err := unmarshalParams(req.Parameters, &p); err != nil {
			return nil, err
		}
		method := p.Method
		if method == "" {
			method = provider.MethodAsk
		}
		res := s.router.Route(ctx, p.AIName, method,
			provider.Params{Prompt: p.Prompt, System: p.System},
			llm.RouteContext{SessionID: p.SessionID})
		if res.Failed() {
			return nil, fmt.Errorf("%s", res.Error)
		}
		return map[string]string{"content": res.Content}, nil

	case OpAppendMessage:
		var p appendMessageParams
		if err := unmarshalParams(req.Parameters, &p); err != nil {
			return nil, err
		}
		msg, err := s.contexts.AddMessage(ctx, p.SessionID, p.Role, p.Content, p.Metadata)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"message_id": msg.ID,
			"timestamp":  msg.Timestamp,
		}, nil

	case OpGetContext:
		var p getContextParams
		if err := unmarshalParams(req.Parameters, &p); err != nil {
			return nil, err
		}
		contextValue, err := s.contexts.GetContext(ctx, p.SessionID)
		if err != nil {
			return nil, err
		}
		if contextValue == nil {
			return map[string]interface{}{"found": false}, nil
		}
		return map[string]interface{}{"found": true, "context": contextValue}, nil

	case OpGetSession:
		var p getSessionParams
		if err := unmarshalParams(req.Parameters, &p); err != nil {
			return nil, err
		}
		sess, err := s.sessions.GetOrCreateSession(ctx, p.AIName, p.ProjectPath, p.CreateIfMissing)
		if err != nil {
			return nil, err
		}
		if sess == nil {
			return map[string]interface{}{"found": false}, nil
		}
		return map[string]interface{}{"found": true, "session": sess}, nil

	case OpClearContext:
		var p clearContextParams
		if err := unmarshalParams(req.Parameters, &p); err != nil {
			return nil, err
		}
		if strings.EqualFold(p.AIName, "all") {
			results, err := s.sessions.ClearAllAIContexts(ctx, p.ProjectPath, p.ClearedBy)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{"cleared": results}, nil
		}
		if err := s.sessions.ClearAIContext(ctx, p.AIName, p.ProjectPath, p.ClearedBy); err != nil {
			return nil, err
		}
		return map[string]interface{}{"cleared": p.AIName}, nil

	case OpProjectInfo:
		var p projectInfoParams
		if err := unmarshalParams(req.Parameters, &p); err != nil {
			return nil, err
		}
		info, err := s.sessions.GetProjectInfo(ctx, p.ProjectPath)
		if err != nil {
			return nil, err
		}
		if info == nil {
			return map[string]interface{}{"found": false}, nil
		}
		return map[string]interface{}{"found": true, "project": info}, nil

	default:
		return nil, fmt.Errorf("unknown operation %q", req.Operation)
	}
}

func unmarshalParams(raw json.RawMessage, dst interface{}) error {
	if len(raw) == 0 {
		return fmt.Errorf("parameters are required")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}
