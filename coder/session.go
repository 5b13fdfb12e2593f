package coder

import (
	"context"
	"errors"
)

// Run starts a two-phase coder session for the user request and returns
// the event stream. The channel is closed when the session ends; planner
// events are fully emitted before any worker event. Cancelling ctx drops
// the session silently (no SessionFailed event).
func Run(ctx context.Context, cfg Config, userRequest string) <-chan Event {
	cfg = cfg.withDefaults()
	out := make(chan Event, cfg.EventBuffer)
	go func() {
		defer close(out)
		runSession(ctx, cfg, userRequest, out)
	}()
	return out
}

type execResult struct {
	outcome *ExecutionOutcome
	err     error
}

func runSession(ctx context.Context, cfg Config, userRequest string, out chan<- Event) {
	emit := func(event Event) bool {
		select {
		case out <- event:
			return true
		case <-ctx.Done():
			return false
		}
	}

	// --- Planner phase ---

	planner := NewAgentExecutor(cfg.PlannerModel, cfg.PlannerTools, cfg.MaxPlannerIterations).
		WithHistory(cfg.InitialHistory)

	plan, ok := runPhase(ctx, planner, buildPlannerPrompt(userRequest), emit, plannerTranslator)
	if !ok {
		return
	}
	if plan == "" {
		emit(Event{Kind: EventSessionFailed, Err: (&EmptyPlanError{}).Error()})
		return
	}

	if !emit(Event{Kind: EventPlanProduced, Plan: plan}) {
		return
	}

	// --- Worker phase ---

	worker := NewAgentExecutor(cfg.WorkerModel, cfg.Tools, cfg.MaxWorkerIterations).
		WithHistory(cfg.InitialHistory)

	summary, ok := runPhase(ctx, worker, buildWorkerPrompt(userRequest, plan), emit, workerTranslator)
	if !ok {
		return
	}

	emit(Event{Kind: EventSessionCompleted, Summary: summary})
}

// phaseTranslator maps one executor event to zero or one coder event.
type phaseTranslator func(ExecutorEvent) (Event, bool)

func plannerTranslator(ev ExecutorEvent) (Event, bool) {
	switch ev.Kind {
	case ExecThinking:
		return Event{Kind: EventPlannerThinking, Text: ev.Text}, true
	case ExecToolCallAttempted:
		return Event{Kind: EventPlannerToolCall, Tool: ev.Call.Name, Args: string(ev.Call.Arguments)}, true
	case ExecToolCallCompleted:
		return Event{Kind: EventPlannerToolResult, Tool: ev.ToolName, Result: ev.Result}, true
	case ExecError:
		return Event{Kind: EventWarning, Message: ev.Message}, true
	default:
		// Finished is consumed by the orchestrator, not forwarded.
		return Event{}, false
	}
}

func workerTranslator(ev ExecutorEvent) (Event, bool) {
	switch ev.Kind {
	case ExecThinking:
		return Event{Kind: EventWorkerThinking, Text: ev.Text}, true
	case ExecToolCallAttempted:
		return Event{Kind: EventWorkerToolCall, Tool: ev.Call.Name, Args: string(ev.Call.Arguments)}, true
	case ExecToolCallCompleted:
		return Event{Kind: EventWorkerToolResult, Tool: ev.ToolName, Result: ev.Result}, true
	case ExecError:
		return Event{Kind: EventWarning, Message: ev.Message}, true
	default:
		return Event{}, false
	}
}

// runPhase executes one agent and forwards its translated events. It
// returns the phase's finish summary and whether the session should
// continue; executor failures become SessionFailed, consumer cancellation
// ends the session silently.
func runPhase(ctx context.Context, exec *AgentExecutor, prompt string, emit func(Event) bool, translate phaseTranslator) (string, bool) {
	execEvents := make(chan ExecutorEvent, defaultEventBuffer)
	resCh := make(chan execResult, 1)

	go func() {
		outcome, err := exec.Execute(ctx, prompt, execEvents)
		close(execEvents)
		resCh <- execResult{outcome: outcome, err: err}
	}()

	for ev := range execEvents {
		if event, forward := translate(ev); forward {
			if !emit(event) {
				// Consumer gone; drain the executor and bail.
				for range execEvents {
				}
				<-resCh
				return "", false
			}
		}
	}

	res := <-resCh
	if res.err != nil {
		if errors.Is(res.err, context.Canceled) || errors.Is(res.err, context.DeadlineExceeded) {
			return "", false
		}
		emit(Event{Kind: EventSessionFailed, Err: res.err.Error()})
		return "", false
	}

	return res.outcome.Summary, true
}
