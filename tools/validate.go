package tools

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// blockedUnixPaths are sensitive system directories no session grant can
// reach. Validation runs before any permission check.
var blockedUnixPaths = []string{
	"/etc",
	"/bin",
	"/sbin",
	"/usr/bin",
	"/usr/sbin",
	"/boot",
	"/dev",
	"/proc",
	"/sys",
	"/var/log",
	"/var/run",
}

var blockedWindowsPaths = []string{
	`C:\Windows\System32`,
	`C:\Windows\SysWOW64`,
	`C:\Windows\Boot`,
	`C:\Program Files`,
	`C:\Program Files (x86)`,
}

func blockedPaths() []string {
	if runtime.GOOS == "windows" {
		return blockedWindowsPaths
	}
	return blockedUnixPaths
}

// ValidatePath fails if path lies in a blocked system directory, either as
// written (made absolute and cleaned) or as resolved through symlinks.
// Paths that cannot be canonicalized are checked in their lexical form only.
func ValidatePath(path string) error {
	check, _ := canonicalize(path)
	lexical := filepath.Clean(path)
	if abs, err := filepath.Abs(path); err == nil {
		lexical = abs
	}
	for _, blocked := range blockedPaths() {
		if isUnderPrefix(check, blocked) || isUnderPrefix(lexical, blocked) {
			return &ValidationError{Msg: fmt.Sprintf("access to system directory denied: %s", blocked)}
		}
	}
	return nil
}

func isUnderPrefix(path, prefix string) bool {
	if runtime.GOOS == "windows" {
		path = strings.ToLower(path)
		prefix = strings.ToLower(prefix)
	}
	return path == prefix || strings.HasPrefix(path, prefix+string(filepath.Separator))
}
