// Package provider normalizes external language-model APIs behind a single
// capability: invoke a named method with parameters and get back content or
// an error value. Adapters never touch conversation state; context arrives
// already folded into the prompt.
package provider

import "context"

// MethodAsk is the one method the broker exercises.
const MethodAsk = "ask"

// Params carries the payload of one invocation. Prompt is required for
// "ask"; System optionally prepends a system message.
type Params struct {
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
}

// Result is the normalized outcome of one invocation. Exactly one of
// Content or Error is set. Network faults, auth rejections, rate limits,
// timeouts and malformed responses all land in Error; adapters do not
// panic and do not return Go errors.
type Result struct {
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Failed reports whether the invocation produced an error result.
func (r Result) Failed() bool {
	return r.Error != ""
}

// Invoker is the single capability every provider adapter exposes.
type Invoker interface {
	Name() string
	Invoke(ctx context.Context, method string, params Params) Result
}
