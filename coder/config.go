package coder

import (
	"github.com/martinemde/hal/llm"
	"github.com/martinemde/hal/tools"
)

// Defaults applied by Config.withDefaults.
const (
	DefaultMaxPlannerIterations = 10
	DefaultMaxWorkerIterations  = 30
	defaultEventBuffer          = 32
)

// Config holds the models, tools, and limits for a coder session.
type Config struct {
	// PlannerModel produces the plan; WorkerModel executes it. They may be
	// the same CompletionModel.
	PlannerModel llm.CompletionModel
	WorkerModel  llm.CompletionModel

	// Tools is the full registry handed to the worker.
	Tools *tools.Registry

	// PlannerTools restricts the planner. When nil, the read-only subset of
	// Tools is derived automatically.
	PlannerTools *tools.Registry

	// Iteration budgets per phase. Zero means the package default.
	MaxPlannerIterations int
	MaxWorkerIterations  int

	// InitialHistory is prior conversation context visible to both agents.
	InitialHistory []llm.Message

	// EventBuffer is the coder event channel capacity. Zero means the
	// package default of 32.
	EventBuffer int
}

func (c Config) withDefaults() Config {
	if c.MaxPlannerIterations <= 0 {
		c.MaxPlannerIterations = DefaultMaxPlannerIterations
	}
	if c.MaxWorkerIterations <= 0 {
		c.MaxWorkerIterations = DefaultMaxWorkerIterations
	}
	if c.EventBuffer <= 0 {
		c.EventBuffer = defaultEventBuffer
	}
	if c.PlannerTools == nil && c.Tools != nil {
		c.PlannerTools = c.Tools.Subset(tools.ReadOnlyToolNames...)
	}
	return c
}
