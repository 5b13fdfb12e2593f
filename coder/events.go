package coder

import "github.com/martinemde/hal/llm"

// Outcome classifies a completed tool call.
type Outcome string

const (
	OutcomeOK        Outcome = "ok"
	OutcomeToolError Outcome = "tool_error"
)

// ExecutorEventKind identifies the type of an executor event.
type ExecutorEventKind string

const (
	ExecThinking          ExecutorEventKind = "thinking"
	ExecToolCallAttempted ExecutorEventKind = "tool_call_attempted"
	ExecToolCallCompleted ExecutorEventKind = "tool_call_completed"
	ExecError             ExecutorEventKind = "execution_error"
	ExecFinished          ExecutorEventKind = "finished"
)

// ExecutorEvent is one observable step of an agent executor run.
type ExecutorEvent struct {
	Kind ExecutorEventKind

	// Thinking
	Text string

	// ToolCallAttempted
	Call *llm.ToolCall

	// ToolCallCompleted
	CallID   string
	ToolName string
	Result   string
	Outcome  Outcome

	// ExecutionError (non-fatal; the loop continues)
	Message string

	// Finished
	Summary string
}

// EventKind identifies the type of a coder session event.
type EventKind string

const (
	EventPlannerThinking   EventKind = "planner_thinking"
	EventPlannerToolCall   EventKind = "planner_tool_call"
	EventPlannerToolResult EventKind = "planner_tool_result"
	EventPlanProduced      EventKind = "plan_produced"
	EventWorkerThinking    EventKind = "worker_thinking"
	EventWorkerToolCall    EventKind = "worker_tool_call"
	EventWorkerToolResult  EventKind = "worker_tool_result"
	EventWarning           EventKind = "warning"
	EventSessionCompleted  EventKind = "session_completed"
	EventSessionFailed     EventKind = "session_failed"
)

// Event is one observable step of a coder session. Which fields are set
// depends on Kind.
type Event struct {
	Kind EventKind

	// *Thinking
	Text string

	// *ToolCall / *ToolResult
	Tool   string
	Args   string
	Result string

	// PlanProduced
	Plan string

	// Warning
	Message string

	// SessionCompleted
	Summary string

	// SessionFailed
	Err string
}
