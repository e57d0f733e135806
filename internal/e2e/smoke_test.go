package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runGotk(t, binaryPath, home, "config", "init", "--server-url", "https://gothub.example.com", "--ledger", "toml")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runGotk(t, binaryPath, home, "config", "path")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Equal(t, filepath.Join(home, ".gothub", "config.toml"), strings.TrimSpace(stdout))

	_, stderr, err = runGotk(t, binaryPath, home, "auth", "set-key", "--value", "gk-smoke-key-1")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err = runGotk(t, binaryPath, home, "auth", "status")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "api key: gk-s")

	_, stderr, err = runGotk(t, binaryPath, home, "exec", "hello")
	require.Error(t, err)
	assert.Contains(t, stderr, "firebase.api_key is not set")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "gotk-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/gotk")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build gotk binary: %s", string(output))
	return binaryPath
}

func runGotk(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "GOTHUB_API_KEY=")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
