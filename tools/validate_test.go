package tools

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePathBlocksSystemDirectories(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix block-list")
	}

	blocked := []string{
		"/etc",
		"/etc/passwd",
		"/bin/sh",
		"/sbin/init",
		"/usr/bin/env",
		"/usr/sbin/sshd",
		"/boot/grub",
		"/dev/null",
		"/proc/self",
		"/sys/kernel",
		"/var/log/syslog",
		"/var/run/docker.sock",
	}
	for _, path := range blocked {
		err := ValidatePath(path)
		assert.Error(t, err, "expected %q to be blocked", path)
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	}
}

func TestValidatePathAllowsOrdinaryPaths(t *testing.T) {
	assert.NoError(t, ValidatePath(t.TempDir()))
	assert.NoError(t, ValidatePath("/home/user/project"))
	// /usr itself is fine; only /usr/bin and /usr/sbin are blocked.
	assert.NoError(t, ValidatePath("/usr/local/share"))
}

func TestValidatePathDefeatsTraversal(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix block-list")
	}
	sneaky := filepath.Join(t.TempDir(), "..", "..", "..", "..", "..", "..", "etc", "passwd")
	assert.Error(t, ValidatePath(sneaky))
}

func TestValidatePathPrefixIsComponentAware(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix block-list")
	}
	// "/etcetera" shares a string prefix with "/etc" but is a different
	// path component.
	assert.NoError(t, ValidatePath("/etcetera/data"))
}
