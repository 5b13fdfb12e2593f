package coder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/martinemde/hal/llm"
	"github.com/martinemde/hal/tools"
)

// continuePrompt nudges the model after a text-only turn: conversation
// without action still burns iterations, so remind it how to terminate.
const continuePrompt = `Have you completed the specific instruction given to you?
1. If you were asked to gather information and you have it, call the "finish" tool.
2. If you were asked to implement something and you have, call the "finish" tool.
3. Otherwise continue working with the available tools.`

// ExecutionOutcome is the terminal result of a successful executor run.
type ExecutionOutcome struct {
	Summary    string
	Iterations int
	History    []llm.Message
}

// AgentExecutor runs one agent: it prompts the model, executes the tool
// calls the model emits strictly in their given order, feeds results back,
// and emits events, until the finish tool runs or the iteration budget is
// exhausted. Tool errors are never fatal; they go back to the model as
// tool_error results.
type AgentExecutor struct {
	model         llm.CompletionModel
	registry      *tools.Registry
	maxIterations int
	history       []llm.Message
}

// NewAgentExecutor creates an executor over the given model and tool slice.
func NewAgentExecutor(model llm.CompletionModel, registry *tools.Registry, maxIterations int) *AgentExecutor {
	return &AgentExecutor{
		model:         model,
		registry:      registry,
		maxIterations: maxIterations,
	}
}

// WithHistory seeds the executor with prior conversation history.
func (e *AgentExecutor) WithHistory(history []llm.Message) *AgentExecutor {
	e.history = append([]llm.Message(nil), history...)
	return e
}

// History returns a copy of the conversation history accumulated so far.
func (e *AgentExecutor) History() []llm.Message {
	out := make([]llm.Message, len(e.history))
	copy(out, e.history)
	return out
}

// Execute runs the loop for the given prompt, emitting events to events.
// Every send selects against ctx cancellation: a cancelled consumer stops
// the loop after the in-flight tool completes and Execute returns ctx.Err().
func (e *AgentExecutor) Execute(ctx context.Context, prompt string, events chan<- ExecutorEvent) (*ExecutionOutcome, error) {
	e.history = append(e.history, llm.UserMessage(prompt))
	defs := e.registry.Definitions()

	iteration := 0
	for {
		if iteration >= e.maxIterations {
			return nil, &IterationLimitError{Max: e.maxIterations}
		}

		resp, err := e.complete(ctx, defs)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, &ModelError{Cause: err}
		}

		calls := resp.ToolCalls()
		text := resp.Text()

		if len(calls) == 0 {
			// Conversational turn without action; still counts against
			// the budget.
			if !e.emit(ctx, events, ExecutorEvent{Kind: ExecThinking, Text: text}) {
				return nil, ctx.Err()
			}
			e.history = append(e.history, llm.AssistantMessage(text))
			e.history = append(e.history, llm.UserMessage(continuePrompt))
			iteration++
			continue
		}

		if text != "" {
			if !e.emit(ctx, events, ExecutorEvent{Kind: ExecThinking, Text: text}) {
				return nil, ctx.Err()
			}
		}

		assistant := llm.Message{Role: llm.RoleAssistant}
		if text != "" {
			assistant.Content = append(assistant.Content, llm.TextPart(text))
		}
		for _, call := range calls {
			assistant.Content = append(assistant.Content, llm.ToolCallPart(call.ID, call.Name, call.Arguments))
		}
		e.history = append(e.history, assistant)

		finished := false
		var summary string
		for i := range calls {
			call := calls[i]
			if !e.emit(ctx, events, ExecutorEvent{Kind: ExecToolCallAttempted, Call: &call}) {
				return nil, ctx.Err()
			}

			result, outcome := e.runTool(ctx, call)
			modelResult := truncateToolOutput(result, call.Name)

			e.history = append(e.history, llm.ToolResultMessage(call.ID, call.Name, modelResult, outcome == OutcomeToolError))

			if !e.emit(ctx, events, ExecutorEvent{
				Kind:     ExecToolCallCompleted,
				CallID:   call.ID,
				ToolName: call.Name,
				Result:   result,
				Outcome:  outcome,
			}) {
				return nil, ctx.Err()
			}

			if call.Name == "finish" && outcome == OutcomeOK {
				summary = result
				finished = true
				// Remaining calls in this turn are ignored.
				break
			}
		}

		if finished {
			if !e.emit(ctx, events, ExecutorEvent{Kind: ExecFinished, Summary: summary}) {
				return nil, ctx.Err()
			}
			return &ExecutionOutcome{
				Summary:    summary,
				Iterations: iteration + 1,
				History:    e.History(),
			}, nil
		}

		if detectLoop(e.history, loopDetectionWindow) {
			warning := fmt.Sprintf("The last %d tool calls follow a repeating pattern. Try a different approach.", loopDetectionWindow)
			e.history = append(e.history, llm.UserMessage(warning))
			if !e.emit(ctx, events, ExecutorEvent{Kind: ExecError, Message: warning}) {
				return nil, ctx.Err()
			}
		}

		iteration++
	}
}

// complete calls the model, retrying once on a retryable error.
func (e *AgentExecutor) complete(ctx context.Context, defs []llm.ToolDefinition) (*llm.Response, error) {
	req := llm.Request{
		Messages:   e.history,
		ToolDefs:   defs,
		ToolChoice: &llm.ToolChoice{Mode: "auto"},
	}

	resp, err := e.model.Complete(ctx, req)
	if err != nil && llm.IsRetryable(err) && ctx.Err() == nil {
		resp, err = e.model.Complete(ctx, req)
	}
	return resp, err
}

// runTool resolves and executes a single tool call. Every failure mode -
// unknown tool, malformed arguments, tool error, panic - becomes a
// recoverable tool_error result.
func (e *AgentExecutor) runTool(ctx context.Context, call llm.ToolCall) (result string, outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			result = fmt.Sprintf("tool %s panicked: %v", call.Name, r)
			outcome = OutcomeToolError
		}
	}()

	tool, ok := e.registry.Get(call.Name)
	if !ok {
		return fmt.Sprintf("no such tool: %s", call.Name), OutcomeToolError
	}

	var args map[string]interface{}
	if len(call.Arguments) > 0 {
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return fmt.Sprintf("invalid tool arguments: %v", err), OutcomeToolError
		}
	}

	out, err := tool.Run(ctx, args)
	if err != nil {
		return err.Error(), OutcomeToolError
	}
	return out, OutcomeOK
}

// emit sends an event unless the consumer is gone. A false return is the
// soft-stop signal: stop emitting and unwind.
func (e *AgentExecutor) emit(ctx context.Context, events chan<- ExecutorEvent, event ExecutorEvent) bool {
	select {
	case events <- event:
		return true
	case <-ctx.Done():
		return false
	}
}
