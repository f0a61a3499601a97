package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// chatInvoker adapts an eino chat model to the Invoker capability. All
// provider constructors funnel into this one implementation so the router
// never branches per vendor.
type chatInvoker struct {
	name      string
	chatModel model.BaseChatModel
	timeout   time.Duration
}

func (c *chatInvoker) Name() string {
	return c.name
}

func (c *chatInvoker) Invoke(ctx context.Context, method string, params Params) Result {
	if method != MethodAsk {
		return Result{Error: fmt.Sprintf("%s: unsupported method %q", c.name, method)}
	}
	if strings.TrimSpace(params.Prompt) == "" {
		return Result{Error: fmt.Sprintf("%s: prompt is required", c.name)}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := make([]*schema.Message, 0, 2)
	if strings.TrimSpace(params.System) != "" {
		messages = append(messages, schema.SystemMessage(params.System))
	}
	messages = append(messages, schema.UserMessage(params.Prompt))

	out, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return Result{Error: fmt.Sprintf("%s: %v", c.name, err)}
	}
	if out == nil || out.Content == "" {
		return Result{Error: fmt.Sprintf("%s: empty response from provider", c.name)}
	}
	return Result{Content: out.Content}
}
