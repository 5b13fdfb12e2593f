package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mitchellh/mapstructure"

	"github.com/martinemde/hal/llm"
)

// ToolFunc executes a tool invocation. It receives the decoded JSON
// argument object and returns a textual result or an error; errors are
// recoverable and fed back to the model as tool_error results.
type ToolFunc func(ctx context.Context, args map[string]interface{}) (string, error)

// Tool pairs a descriptor with its executor.
type Tool struct {
	Definition llm.ToolDefinition
	Run        ToolFunc
}

// Registry maps tool names to descriptors and dispatches invocations.
// It is immutable after session construction and safe to share.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds or replaces a tool. Names are unique within a registry.
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Definition.Name] = tool
}

// Get returns a registered tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// Definitions returns all tool definitions sorted by name, for surfacing to
// the model.
func (r *Registry) Definitions() []llm.ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]llm.ToolDefinition, 0, len(r.tools))
	for _, tool := range r.tools {
		defs = append(defs, tool.Definition)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Names returns the sorted names of all registered tools.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Subset returns a new registry holding only the named tools. Unknown
// names are skipped.
func (r *Registry) Subset(names ...string) *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub := NewRegistry()
	for _, name := range names {
		if tool, ok := r.tools[name]; ok {
			sub.tools[name] = tool
		}
	}
	return sub
}

// Validator is implemented by parameter structs that check required fields
// and value constraints after decoding.
type Validator interface {
	Validate() error
}

// decodeArgs decodes a JSON argument object into a typed params struct and
// runs its validation. Failures are ValidationErrors so they surface as
// recoverable tool_error results.
func decodeArgs(args map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return &ValidationError{Msg: fmt.Sprintf("invalid arguments: %v", err)}
	}
	if err := decoder.Decode(args); err != nil {
		return &ValidationError{Msg: fmt.Sprintf("invalid arguments: %v", err)}
	}
	if v, ok := out.(Validator); ok {
		if err := v.Validate(); err != nil {
			return &ValidationError{Msg: err.Error()}
		}
	}
	return nil
}

// objectSchema builds the JSON-Schema object describing a tool's named
// parameters, in the wire shape the model consumes.
func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func property(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}
