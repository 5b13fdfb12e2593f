// Package coder drives a large language model through a bounded, tool-using
// work loop to complete an engineering task.
//
// AgentExecutor is the reusable core: it prompts a CompletionModel, runs
// the tool calls the model emits strictly in order through a tools.Registry,
// feeds results back, and streams typed ExecutorEvents to the caller until
// the model calls the finish tool or the iteration budget runs out.
//
// Run layers a two-phase session on top: a planner agent with a read-only
// tool subset produces a plan via its finish call, then a worker agent with
// the full toolset executes that plan. The combined activity surfaces as a
// single ordered stream of Events; planner events always precede worker
// events.
//
//	state := tools.NewState()
//	registry := tools.NewCoreRegistry(state)
//	cfg := coder.Config{
//	    PlannerModel: client, WorkerModel: client,
//	    Tools:        registry,
//	}
//	for event := range coder.Run(ctx, cfg, "Refactor the login function.") {
//	    switch event.Kind {
//	    case coder.EventPlanProduced:
//	        fmt.Println("plan:", event.Plan)
//	    case coder.EventSessionCompleted:
//	        fmt.Println("done:", event.Summary)
//	    }
//	}
package coder
