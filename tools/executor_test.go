package tools

import (
	"context"
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteDeniedCommand(t *testing.T) {
	perms := NewSessionPermissions()
	exec := NewShellExecutor(perms)

	_, err := exec.Execute(context.Background(), "rm -rf /tmp/x", "")
	require.Error(t, err)
	var pErr *PermissionError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, "execute", pErr.Op)
}

func TestExecuteAllowedCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shell")
	}
	perms := NewSessionPermissions()
	exec := NewShellExecutor(perms)

	result, err := exec.Execute(context.Background(), "echo hello", "")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", result.Stdout)
	assert.Equal(t, 0, result.ExitCode)
	assert.Empty(t, result.Stderr)
}

func TestExecuteNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shell")
	}
	perms := NewSessionPermissions()
	perms.AllowCommand("false")
	exec := NewShellExecutor(perms)

	result, err := exec.Execute(context.Background(), "false", "")
	require.NoError(t, err, "a non-zero exit is a result, not an error")
	assert.NotEqual(t, 0, result.ExitCode)
}

func TestExecuteWorkingDirRequiresReadGrant(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shell")
	}
	dir := t.TempDir()
	perms := NewSessionPermissions()
	exec := NewShellExecutor(perms)

	_, err := exec.Execute(context.Background(), "pwd", dir)
	var pErr *PermissionError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, "read", pErr.Op)

	perms.AllowRead(dir)
	result, err := exec.Execute(context.Background(), "pwd", dir)
	require.NoError(t, err)
	assert.Contains(t, result.Stdout, "/")
}

func TestDetectShellPrefersShellEnv(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shell")
	}
	t.Setenv("SHELL", "/bin/sh")
	shell, flag, err := detectShell()
	require.NoError(t, err)
	assert.Equal(t, "/bin/sh", shell)
	assert.Equal(t, "-c", flag)
}

func TestDetectShellFallsBackWhenEnvInvalid(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shell")
	}
	t.Setenv("SHELL", "/no/such/shell")
	shell, _, err := detectShell()
	require.NoError(t, err)
	assert.Equal(t, "/bin/sh", shell)
}

func TestShellDetectionCached(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shell")
	}
	perms := NewSessionPermissions()
	exec := NewShellExecutor(perms)

	shell1, _, err := exec.ensureShell()
	require.NoError(t, err)

	// Changing the environment after detection has no effect.
	old := os.Getenv("SHELL")
	t.Setenv("SHELL", "/no/such/shell")
	defer t.Setenv("SHELL", old)

	shell2, _, err := exec.ensureShell()
	require.NoError(t, err)
	assert.Equal(t, shell1, shell2)
}
