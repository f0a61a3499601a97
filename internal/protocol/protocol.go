// Package protocol exposes the broker's operations over a uniform
// request/response envelope, one JSON document per line. It owns
// serialization and dispatch only; all semantics live in the services and
// the router.
package protocol

import "encoding/json"

// Request is the uniform inbound envelope.
type Request struct {
	Operation     string          `json:"operation"`
	Parameters    json.RawMessage `json:"parameters,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
}

// Response is the uniform outbound envelope. Exactly one of Result or
// Error is populated.
type Response struct {
	CorrelationID string      `json:"correlation_id,omitempty"`
	Result        interface{} `json:"result,omitempty"`
	Error         string      `json:"error,omitempty"`
}

// Operation names. The set is fixed; anything else yields an error
// envelope.
const (
	OpRouteRequest  = "route_request"
	OpAppendMessage = "append_message"
	OpGetContext    = "get_context"
	OpGetSession    = "get_session"
	OpClearContext  = "clear_context"
	OpProjectInfo   = "project_info"
)

type routeRequestParams struct {
	AIName    string `json:"ai_name"`
	Method    string `json:"method"`
	Prompt    string `json:"prompt"`
	System    string `json:"system,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

type appendMessageParams struct {
	SessionID string                 `json:"session_id"`
	Role      string                 `json:"role"`
	Content   string                 `json:"content"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type getContextParams struct {
	SessionID string `json:"session_id"`
}

type getSessionParams struct {
	AIName          string `json:"ai_name"`
	ProjectPath     string `json:"project_path"`
	CreateIfMissing bool   `json:"create_if_missing"`
}

type clearContextParams struct {
	AIName      string `json:"ai_name"`
	ProjectPath string `json:"project_path"`
	ClearedBy   string `json:"cleared_by,omitempty"`
}

type projectInfoParams struct {
	ProjectPath string `json:"project_path"`
}
