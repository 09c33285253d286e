package openai

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/sectool/internal/domain"
	"github.com/kailas-cloud/sectool/internal/domain/tool"
	"github.com/kailas-cloud/sectool/internal/logger"
)

// Definition renders d as an OpenAI function tool.
func Definition(d tool.Descriptor) openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        d.Name,
			Description: d.Description,
			Parameters:  d.InputSchema,
		},
	}
}

// runner is the routed entry point (router.Service).
type runner interface {
	Run(ctx context.Context, text string) (domain.Result, error)
}

// Dispatcher answers OpenAI tool calls addressed to the SEC tool.
type Dispatcher struct {
	name   string
	runner runner
}

// NewDispatcher creates a Dispatcher for calls named d.Name.
func NewDispatcher(d tool.Descriptor, r runner) *Dispatcher {
	return &Dispatcher{name: d.Name, runner: r}
}

// Handle executes call and returns the tool-role reply.
// Failures are returned as message content so the model can correct itself.
func (d *Dispatcher) Handle(ctx context.Context, call openai.ToolCall) openai.ChatCompletionMessage {
	log := logger.FromContext(ctx).With(
		zap.String("tool_call_id", call.ID),
		zap.String("function", call.Function.Name),
	)

	content, err := d.handle(ctx, call)
	if err != nil {
		log.Info("Tool call failed", zap.Error(err))
		content = err.Error()
	}

	return openai.ChatCompletionMessage{
		Role:       openai.ChatMessageRoleTool,
		Name:       call.Function.Name,
		ToolCallID: call.ID,
		Content:    content,
	}
}

func (d *Dispatcher) handle(ctx context.Context, call openai.ToolCall) (string, error) {
	if call.Function.Name != d.name {
		return "", fmt.Errorf("unknown tool %q: %w", call.Function.Name, domain.ErrInvalidInput)
	}

	var in tool.Input
	if err := json.Unmarshal([]byte(call.Function.Arguments), &in); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", domain.ErrInvalidInput)
	}

	res, err := d.runner.Run(ctx, in.Query)
	if err != nil {
		return "", err
	}

	out, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(out), nil
}
