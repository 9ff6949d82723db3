//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Environment variable names for E2E test configuration.
const (
	EnvBinary = "E2E_AGROSTOCK_BINARY"
)

// Default configuration values.
const (
	DefaultTimeout = 15 * time.Second
)

// binaryPath returns the agrostock binary under test and skips the test
// when it is not configured or missing.
func binaryPath(t *testing.T) string {
	t.Helper()

	path := os.Getenv(EnvBinary)
	if path == "" {
		t.Skipf("%s is not set", EnvBinary)
	}
	if _, err := os.Stat(path); err != nil {
		t.Skipf("Binary unavailable at %s: %v", path, err)
	}

	return path
}

// sessionResult captures one run of the binary.
type sessionResult struct {
	stdout   string
	exitCode int
	dir      string
	logPath  string
}

// runSession starts the binary with its reports and logs redirected to a
// temp directory, feeds it lines on stdin and waits for it to exit.
func runSession(t *testing.T, env []string, lines ...string) sessionResult {
	t.Helper()

	bin := binaryPath(t)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "agrostock.log")

	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin)
	cmd.Env = append(os.Environ(),
		"APP_REPORT_DIR="+dir,
		"APP_LOG_LEVEL=info",
		"APP_LOG_OUTPUT="+logPath,
		"APP_METRICS_TEXTFILE="+filepath.Join(dir, "agrostock.prom"),
	)
	cmd.Env = append(cmd.Env, env...)
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n") + "\n")

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()

	result := sessionResult{stdout: stdout.String(), dir: dir, logPath: logPath}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.exitCode = exitErr.ExitCode()
	} else if err != nil {
		t.Fatalf("running %s: %v", bin, err)
	}

	return result
}

// readFile returns the content of name inside dir.
func readFile(t *testing.T, dir, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}

	return string(data)
}

// recentEntry mirrors one element of the recent JSON report.
type recentEntry struct {
	Name      string `json:"name"`
	Movements []struct {
		Kind   string      `json:"kind"`
		Amount json.Number `json:"amount"`
		Date   string      `json:"date"`
	} `json:"movements"`
}

func readRecent(t *testing.T, dir string) []recentEntry {
	t.Helper()

	var entries []recentEntry
	if err := json.Unmarshal([]byte(readFile(t, dir, "relatorio_30_dias.json")), &entries); err != nil {
		t.Fatalf("decoding recent report: %v", err)
	}

	return entries
}
