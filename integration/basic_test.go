//go:build basic

package integration

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBranchlensVersion checks that the binary reports version information.
func TestBranchlensVersion(t *testing.T) {
	binPath := getBranchlensBinary()
	output, err := exec.Command(binPath, "version").CombinedOutput()
	require.NoError(t, err)
	assert.Contains(t, string(output), "branchlens CLI")
	assert.Contains(t, string(output), "Runtime:")
}

// TestBranchlensSQLiteLifecycle exercises cache and analysis management with
// the default SQLite backends, isolated to a temporary home directory.
func TestBranchlensSQLiteLifecycle(t *testing.T) {
	home := t.TempDir()
	_ = os.Setenv("HOME", home)
	_ = os.Setenv("BRANCHLENS_CACHE_BACKEND", "sqlite")
	_ = os.Setenv("BRANCHLENS_ANALYSIS_BACKEND", "sqlite")
	defer func() { _ = os.Unsetenv("BRANCHLENS_CACHE_BACKEND") }()
	defer func() { _ = os.Unsetenv("BRANCHLENS_ANALYSIS_BACKEND") }()

	err := runBranchlensCommand(t, "analysis", "migrate")
	require.NoError(t, err)

	err = runBranchlensCommand(t, "cache", "status")
	require.NoError(t, err)

	err = runBranchlensCommand(t, "analysis", "status")
	require.NoError(t, err)

	err = runBranchlensCommand(t, "cache", "clear")
	require.NoError(t, err)

	err = runBranchlensCommand(t, "analysis", "clear")
	require.NoError(t, err)
}

// TestBranchlensRejectsNonGitHubURL verifies attribution commands fail fast
// on unsupported repository hosts without touching the network.
func TestBranchlensRejectsNonGitHubURL(t *testing.T) {
	binPath := getBranchlensBinary()
	output, err := exec.Command(binPath, "authors", "https://gitlab.com/foo/bar").CombinedOutput()
	require.Error(t, err)
	assert.True(t, strings.Contains(string(output), "github.com"), "expected host validation error, got: %s", string(output))
}
