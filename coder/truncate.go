package coder

import "fmt"

// Character limits applied to tool output before it re-enters the model's
// context. The full output always reaches the event stream untruncated.
var toolOutputLimits = map[string]int{
	"show_file":             50000,
	"execute_shell_command": 30000,
	"search_in_file":        20000,
	"directory_tree":        20000,
	"init":                  20000,
}

const fallbackOutputLimit = 30000

// truncateToolOutput caps output at the tool's character limit, removing
// the middle so both the start and the end survive.
func truncateToolOutput(output, toolName string) string {
	maxChars, ok := toolOutputLimits[toolName]
	if !ok {
		maxChars = fallbackOutputLimit
	}
	if len(output) <= maxChars {
		return output
	}

	half := maxChars / 2
	removed := len(output) - maxChars
	return output[:half] +
		fmt.Sprintf("\n\n[Tool output truncated: %d characters removed from the middle. "+
			"Re-run the tool with more targeted parameters to see specific parts.]\n\n", removed) +
		output[len(output)-half:]
}
