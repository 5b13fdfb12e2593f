package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martinemde/hal/llm"
)

func stubTool(name string) Tool {
	return Tool{
		Definition: llm.ToolDefinition{
			Name:        name,
			Description: "stub",
			Parameters:  objectSchema(map[string]interface{}{}),
		},
		Run: func(context.Context, map[string]interface{}) (string, error) {
			return name + " ran", nil
		},
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stubTool("alpha"))
	reg.Register(stubTool("beta"))

	tool, ok := reg.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "alpha", tool.Definition.Name)

	_, ok = reg.Get("gamma")
	assert.False(t, ok)
	assert.Equal(t, 2, reg.Count())
}

func TestRegistryNamesAreUnique(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stubTool("alpha"))
	reg.Register(stubTool("alpha"))

	assert.Equal(t, 1, reg.Count())
}

func TestRegistryDefinitionsSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stubTool("zeta"))
	reg.Register(stubTool("alpha"))
	reg.Register(stubTool("mu"))

	defs := reg.Definitions()
	require.Len(t, defs, 3)
	assert.Equal(t, []string{"alpha", "mu", "zeta"}, []string{defs[0].Name, defs[1].Name, defs[2].Name})
}

func TestRegistrySubset(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stubTool("alpha"))
	reg.Register(stubTool("beta"))
	reg.Register(stubTool("gamma"))

	sub := reg.Subset("alpha", "gamma", "missing")
	assert.Equal(t, []string{"alpha", "gamma"}, sub.Names())

	// The full registry is untouched.
	assert.Equal(t, 3, reg.Count())
}

func TestCoreRegistryToolSurface(t *testing.T) {
	reg := NewCoreRegistry(NewState())

	expected := []string{
		"directory_tree",
		"edit_file",
		"execute_shell_command",
		"finish",
		"init",
		"request_permission",
		"search_in_file",
		"show_file",
		"think",
		"write_file",
	}
	assert.Equal(t, expected, reg.Names())

	// Every descriptor carries the wire schema shape.
	for _, def := range reg.Definitions() {
		assert.Equal(t, "object", def.Parameters["type"], "tool %s", def.Name)
		assert.Contains(t, def.Parameters, "properties", "tool %s", def.Name)
		assert.NotEmpty(t, def.Description, "tool %s", def.Name)
	}
}

func TestReadOnlySubsetExcludesMutators(t *testing.T) {
	reg := NewCoreRegistry(NewState())
	sub := reg.Subset(ReadOnlyToolNames...)

	for _, name := range []string{"edit_file", "write_file", "request_permission", "init"} {
		_, ok := sub.Get(name)
		assert.False(t, ok, "%s must not be in the read-only subset", name)
	}
	for _, name := range []string{"show_file", "search_in_file", "directory_tree", "think", "finish"} {
		_, ok := sub.Get(name)
		assert.True(t, ok, "%s missing from the read-only subset", name)
	}
}

func TestDecodeArgsValidation(t *testing.T) {
	var params searchParams
	err := decodeArgs(map[string]interface{}{"path": "/tmp/x"}, &params)
	require.Error(t, err, "missing pattern must fail validation")
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)

	err = decodeArgs(map[string]interface{}{"path": "/tmp/x", "pattern": "foo", "is_regex": true}, &params)
	require.NoError(t, err)
	assert.True(t, params.IsRegex)
}

func TestDecodeArgsWeakNumbers(t *testing.T) {
	// JSON numbers arrive as float64.
	var params lineRangeParams
	err := decodeArgs(map[string]interface{}{"path": "/tmp/x", "start_line": float64(3), "end_line": float64(7)}, &params)
	require.NoError(t, err)
	assert.Equal(t, 3, params.StartLine)
	assert.Equal(t, 7, params.EndLine)
}

func TestDecodeArgsRejectsWrongType(t *testing.T) {
	var params editParams
	err := decodeArgs(map[string]interface{}{"path": "/tmp/x", "old_str": map[string]interface{}{"no": "strings"}, "new_str": "y"}, &params)
	assert.Error(t, err)
}
