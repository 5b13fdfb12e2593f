package coder

import "fmt"

// buildPlannerPrompt frames the user task for the planning agent. The plan
// must arrive through the finish tool's summary so the orchestrator can
// extract it structurally.
func buildPlannerPrompt(userRequest string) string {
	return fmt.Sprintf(`<user_task>%s</user_task>

You are the planning agent. Use the available read-only tools to gather the
information you need about the project, then produce a concrete step-by-step
implementation plan for the task above.

When your plan is complete, call the "finish" tool with the ENTIRE plan as
the summary parameter. The plan must be self-contained: the implementing
agent will see only the task and your plan, not your exploration.`, userRequest)
}

// buildWorkerPrompt frames the task plus the planner's plan for the
// implementing agent. The plan is included verbatim.
func buildWorkerPrompt(userRequest, plan string) string {
	return fmt.Sprintf(`<user_task>%s</user_task>

<plan>
%s
</plan>

You are the implementing agent. Execute the plan above using the available
tools. Request permissions before touching new locations. When the plan is
fully implemented, call the "finish" tool with a summary of what you did.
Do NOTHING beyond the plan.`, userRequest, plan)
}
