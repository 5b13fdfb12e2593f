package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/martinemde/hal/llm"
)

type permissionParams struct {
	Operation string `mapstructure:"operation"`
	Path      string `mapstructure:"path"`
}

func (p *permissionParams) Validate() error {
	switch p.Operation {
	case "read", "write", "execute":
	default:
		return fmt.Errorf("operation must be one of \"read\", \"write\", \"execute\"; got %q", p.Operation)
	}
	if p.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

type pathParams struct {
	Path string `mapstructure:"path"`
}

func (p *pathParams) Validate() error {
	if p.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

type thoughtParams struct {
	Thought string `mapstructure:"thought"`
}

func (p *thoughtParams) Validate() error {
	if p.Thought == "" {
		return fmt.Errorf("thought is required")
	}
	return nil
}

type finishParams struct {
	Summary string `mapstructure:"summary"`
}

func (p *finishParams) Validate() error {
	if p.Summary == "" {
		return fmt.Errorf("summary is required")
	}
	return nil
}

func registerProjectTools(reg *Registry, state *State) {
	reg.Register(Tool{
		Definition: llm.ToolDefinition{
			Name: "request_permission",
			Description: "Request permission before performing operations - use 'read' or 'write' " +
				"for file access with a directory path, or 'execute' with the command as path. " +
				"Must be called before tools that touch new locations.",
			Parameters: objectSchema(map[string]interface{}{
				"operation": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"read", "write", "execute"},
					"description": "Type of permission to request.",
				},
				"path": property("string", "Directory or file path, or for execute: the command to run."),
			}, "operation", "path"),
		},
		Run: func(_ context.Context, args map[string]interface{}) (string, error) {
			var params permissionParams
			if err := decodeArgs(args, &params); err != nil {
				return "", err
			}

			if err := ValidatePath(params.Path); err != nil {
				return "", err
			}

			if params.Operation == "execute" {
				state.Permissions.AllowCommand(params.Path)
				return fmt.Sprintf("Execute permission granted for command: %s", commandProgram(params.Path)), nil
			}

			// Grant on the directory itself, or the parent for files.
			dir := params.Path
			if info, err := os.Stat(params.Path); err != nil || !info.IsDir() {
				dir = filepath.Dir(params.Path)
			}

			switch params.Operation {
			case "read":
				state.Permissions.AllowRead(dir)
				return fmt.Sprintf("Read permission granted for directory: %s", dir), nil
			default:
				state.Permissions.AllowWrite(dir)
				return fmt.Sprintf("Write permission granted for directory: %s", dir), nil
			}
		},
	})

	reg.Register(Tool{
		Definition: llm.ToolDefinition{
			Name: "init",
			Description: "Initialize a project session: grants read and write permission for the " +
				"project root and returns its directory tree to seed your context.",
			Parameters: objectSchema(map[string]interface{}{
				"path": property("string", "Path to the project root directory."),
			}, "path"),
		},
		Run: func(_ context.Context, args map[string]interface{}) (string, error) {
			var params pathParams
			if err := decodeArgs(args, &params); err != nil {
				return "", err
			}
			if err := ValidatePath(params.Path); err != nil {
				return "", err
			}
			info, err := os.Stat(params.Path)
			if err != nil {
				return "", fmt.Errorf("project root not accessible: %w", err)
			}
			if !info.IsDir() {
				return "", fmt.Errorf("project root is not a directory: %s", params.Path)
			}

			state.Permissions.AllowRead(params.Path)
			state.Permissions.AllowWrite(params.Path)

			tree, err := buildTree(params.Path, state.Permissions, defaultTreeDepth)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Project initialized at %s\n\n%s", params.Path, tree), nil
		},
	})

	reg.Register(Tool{
		Definition: llm.ToolDefinition{
			Name: "think",
			Description: "Record a thought. Obtains no new information and changes nothing; use it " +
				"for complex reasoning you want in the log.",
			Parameters: objectSchema(map[string]interface{}{
				"thought": property("string", "A thought to think about."),
			}, "thought"),
		},
		Run: func(_ context.Context, args map[string]interface{}) (string, error) {
			var params thoughtParams
			if err := decodeArgs(args, &params); err != nil {
				return "", err
			}
			return "", nil
		},
	})

	reg.Register(Tool{
		Definition: llm.ToolDefinition{
			Name: "finish",
			Description: "Signal that the task is complete. The summary must contain your entire " +
				"final output: the plan, analysis, or completion report.",
			Parameters: objectSchema(map[string]interface{}{
				"summary": property("string", "Complete summary of the work performed or the produced plan."),
			}, "summary"),
		},
		Run: func(_ context.Context, args map[string]interface{}) (string, error) {
			var params finishParams
			if err := decodeArgs(args, &params); err != nil {
				return "", err
			}
			return params.Summary, nil
		},
	})
}
