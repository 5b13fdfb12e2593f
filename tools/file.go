package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/martinemde/hal/llm"
)

type lineRangeParams struct {
	Path      string `mapstructure:"path"`
	StartLine int    `mapstructure:"start_line"`
	EndLine   int    `mapstructure:"end_line"`
}

func (p *lineRangeParams) Validate() error {
	if p.Path == "" {
		return fmt.Errorf("path is required")
	}
	if p.StartLine < 0 || p.EndLine < 0 {
		return fmt.Errorf("line numbers are 1-based and must be positive")
	}
	return nil
}

type searchParams struct {
	Path    string `mapstructure:"path"`
	Pattern string `mapstructure:"pattern"`
	IsRegex bool   `mapstructure:"is_regex"`
}

func (p *searchParams) Validate() error {
	if p.Path == "" {
		return fmt.Errorf("path is required")
	}
	if p.Pattern == "" {
		return fmt.Errorf("pattern is required")
	}
	return nil
}

type editParams struct {
	Path   string `mapstructure:"path"`
	OldStr string `mapstructure:"old_str"`
	NewStr string `mapstructure:"new_str"`
}

func (p *editParams) Validate() error {
	if p.Path == "" {
		return fmt.Errorf("path is required")
	}
	if p.OldStr == "" {
		return fmt.Errorf("old_str is required")
	}
	return nil
}

type writeParams struct {
	Path    string `mapstructure:"path"`
	Content string `mapstructure:"content"`
	Append  bool   `mapstructure:"append"`
}

func (p *writeParams) Validate() error {
	if p.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

type commandParams struct {
	Command          string `mapstructure:"command"`
	WorkingDirectory string `mapstructure:"working_directory"`
}

func (p *commandParams) Validate() error {
	if p.Command == "" {
		return fmt.Errorf("command is required")
	}
	return nil
}

type treeParams struct {
	Path     string `mapstructure:"path"`
	MaxDepth int    `mapstructure:"max_depth"`
}

func (p *treeParams) Validate() error {
	if p.Path == "" {
		return fmt.Errorf("path is required")
	}
	if p.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be positive")
	}
	return nil
}

func registerFileTools(reg *Registry, state *State) {
	reg.Register(Tool{
		Definition: llm.ToolDefinition{
			Name: "show_file",
			Description: "View file contents with an optional 1-based inclusive line range. " +
				"Requires prior read permission.",
			Parameters: objectSchema(map[string]interface{}{
				"path":       property("string", "Path to the file."),
				"start_line": property("integer", "Starting line number (1-based, optional)."),
				"end_line":   property("integer", "Ending line number (inclusive, optional)."),
			}, "path"),
		},
		Run: func(_ context.Context, args map[string]interface{}) (string, error) {
			var params lineRangeParams
			if err := decodeArgs(args, &params); err != nil {
				return "", err
			}
			if err := ValidatePath(params.Path); err != nil {
				return "", err
			}
			if !state.Permissions.CanRead(params.Path) {
				return "", &PermissionError{Op: "read", Target: params.Path}
			}

			data, err := os.ReadFile(params.Path)
			if err != nil {
				return "", fmt.Errorf("failed to read file: %w", err)
			}
			content := string(data)

			if params.StartLine == 0 && params.EndLine == 0 {
				return content, nil
			}

			lines := strings.Split(content, "\n")
			start := params.StartLine
			if start < 1 {
				start = 1
			}
			end := params.EndLine
			if end == 0 || end > len(lines) {
				end = len(lines)
			}
			// Out-of-range start clamps to empty content rather than erroring.
			if start > len(lines) || start > end {
				return "", nil
			}
			return strings.Join(lines[start-1:end], "\n"), nil
		},
	})

	reg.Register(Tool{
		Definition: llm.ToolDefinition{
			Name: "search_in_file",
			Description: "Search a file for a pattern and return matching lines with line numbers. " +
				"Set is_regex=true to treat the pattern as a regular expression. Requires read permission.",
			Parameters: objectSchema(map[string]interface{}{
				"path":     property("string", "Path to the file."),
				"pattern":  property("string", "Search pattern (substring, or regex with is_regex=true)."),
				"is_regex": property("boolean", "Treat pattern as a regular expression. Default: false."),
			}, "path", "pattern"),
		},
		Run: func(_ context.Context, args map[string]interface{}) (string, error) {
			var params searchParams
			if err := decodeArgs(args, &params); err != nil {
				return "", err
			}
			if err := ValidatePath(params.Path); err != nil {
				return "", err
			}
			if !state.Permissions.CanRead(params.Path) {
				return "", &PermissionError{Op: "read", Target: params.Path}
			}

			data, err := os.ReadFile(params.Path)
			if err != nil {
				return "", fmt.Errorf("failed to read file: %w", err)
			}

			match := func(line string) bool { return strings.Contains(line, params.Pattern) }
			if params.IsRegex {
				re, err := regexp.Compile(params.Pattern)
				if err != nil {
					return "", fmt.Errorf("invalid regex pattern: %w", err)
				}
				match = re.MatchString
			}

			var sb strings.Builder
			count := 0
			for i, line := range strings.Split(string(data), "\n") {
				if match(line) {
					fmt.Fprintf(&sb, "%d: %s\n", i+1, line)
					count++
				}
			}
			if count == 0 {
				return "No matches found.", nil
			}
			return strings.TrimRight(sb.String(), "\n"), nil
		},
	})

	reg.Register(Tool{
		Definition: llm.ToolDefinition{
			Name: "edit_file",
			Description: "Replace text in a file. old_str must occur exactly once; use search_in_file " +
				"first to verify uniqueness. Requires write permission.",
			Parameters: objectSchema(map[string]interface{}{
				"path":    property("string", "Path to the file."),
				"old_str": property("string", "Text to replace (must be unique in the file)."),
				"new_str": property("string", "Replacement text."),
			}, "path", "old_str", "new_str"),
		},
		Run: func(_ context.Context, args map[string]interface{}) (string, error) {
			var params editParams
			if err := decodeArgs(args, &params); err != nil {
				return "", err
			}
			if err := ValidatePath(params.Path); err != nil {
				return "", err
			}
			if !state.Permissions.CanWrite(params.Path) {
				return "", &PermissionError{Op: "write", Target: params.Path}
			}

			data, err := os.ReadFile(params.Path)
			if err != nil {
				return "", fmt.Errorf("failed to read file: %w", err)
			}
			content := string(data)

			occurrences := strings.Count(content, params.OldStr)
			if occurrences == 0 {
				return "", fmt.Errorf("old_str not found in %s", params.Path)
			}
			if occurrences > 1 {
				return "", fmt.Errorf("old_str found %d times in %s; provide more context to make the match unique", occurrences, params.Path)
			}

			updated := strings.Replace(content, params.OldStr, params.NewStr, 1)
			if err := os.WriteFile(params.Path, []byte(updated), 0o644); err != nil {
				return "", fmt.Errorf("failed to write file: %w", err)
			}
			return fmt.Sprintf("Successfully edited %s", params.Path), nil
		},
	})

	reg.Register(Tool{
		Definition: llm.ToolDefinition{
			Name: "write_file",
			Description: "Create a file or replace its contents; set append=true to add to the end " +
				"instead. Creates parent directories inside the writable root as needed. " +
				"Requires write permission.",
			Parameters: objectSchema(map[string]interface{}{
				"path":    property("string", "Path to the file."),
				"content": property("string", "Content to write."),
				"append":  property("boolean", "Append instead of overwriting. Default: false."),
			}, "path", "content"),
		},
		Run: func(_ context.Context, args map[string]interface{}) (string, error) {
			var params writeParams
			if err := decodeArgs(args, &params); err != nil {
				return "", err
			}
			if err := ValidatePath(params.Path); err != nil {
				return "", err
			}
			if !state.Permissions.CanWrite(params.Path) {
				return "", &PermissionError{Op: "write", Target: params.Path}
			}

			if err := os.MkdirAll(filepath.Dir(params.Path), 0o755); err != nil {
				return "", fmt.Errorf("failed to create parent directory: %w", err)
			}

			if params.Append {
				f, err := os.OpenFile(params.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
				if err != nil {
					return "", fmt.Errorf("failed to open file for appending: %w", err)
				}
				defer f.Close()
				if _, err := f.WriteString(params.Content); err != nil {
					return "", fmt.Errorf("failed to append to file: %w", err)
				}
				return fmt.Sprintf("Appended %d bytes to %s", len(params.Content), params.Path), nil
			}

			if err := os.WriteFile(params.Path, []byte(params.Content), 0o644); err != nil {
				return "", fmt.Errorf("failed to write file: %w", err)
			}
			return fmt.Sprintf("Wrote %d bytes to %s", len(params.Content), params.Path), nil
		},
	})

	reg.Register(Tool{
		Definition: llm.ToolDefinition{
			Name: "directory_tree",
			Description: "Show a directory tree for a path, directories before files. Requires read " +
				"permission; subdirectories the session may not read are skipped.",
			Parameters: objectSchema(map[string]interface{}{
				"path":      property("string", "Path to the directory."),
				"max_depth": property("integer", "Maximum recursion depth. Default: 3."),
			}, "path"),
		},
		Run: func(_ context.Context, args map[string]interface{}) (string, error) {
			var params treeParams
			if err := decodeArgs(args, &params); err != nil {
				return "", err
			}
			if err := ValidatePath(params.Path); err != nil {
				return "", err
			}
			if !state.Permissions.CanRead(params.Path) {
				return "", &PermissionError{Op: "read", Target: params.Path}
			}

			depth := params.MaxDepth
			if depth == 0 {
				depth = defaultTreeDepth
			}
			return buildTree(params.Path, state.Permissions, depth)
		},
	})

	reg.Register(Tool{
		Definition: llm.ToolDefinition{
			Name: "execute_shell_command",
			Description: "Run a shell command and return stdout, stderr, and the exit code. " +
				"Requires execute permission for the command's program.",
			Parameters: objectSchema(map[string]interface{}{
				"command":           property("string", "Command to execute."),
				"working_directory": property("string", "Working directory for the command (optional)."),
			}, "command"),
		},
		Run: func(ctx context.Context, args map[string]interface{}) (string, error) {
			var params commandParams
			if err := decodeArgs(args, &params); err != nil {
				return "", err
			}

			result, err := state.Executor.Execute(ctx, params.Command, params.WorkingDirectory)
			if err != nil {
				return "", err
			}

			payload, err := json.Marshal(map[string]interface{}{
				"stdout":    result.Stdout,
				"stderr":    result.Stderr,
				"exit_code": result.ExitCode,
				"success":   result.ExitCode == 0,
			})
			if err != nil {
				return "", fmt.Errorf("failed to marshal command result: %w", err)
			}
			return string(payload), nil
		},
	})
}
