// If you are AI: This file provides helper functions for building and running the flvkit binary in tests.

package itest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BuildBinary compiles cmd/flvkit into dir and returns its path.
func BuildBinary(dir string) (string, error) {
	binPath := filepath.Join(dir, "flvkit")
	out, err := exec.Command("go", "build", "-o", binPath, "../../cmd/flvkit").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("build flvkit: %w: %s", err, out)
	}
	return binPath, nil
}

// FreePort returns a TCP port that was free a moment ago.
func FreePort() (int, error) {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		return 0, fmt.Errorf("find free port: %w", err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port, nil
}

// WriteConfig writes a serve configuration for mediaDir into dir.
func WriteConfig(dir, mediaDir string, healthPort, httpPort int) (string, error) {
	content := fmt.Sprintf(`log:
  level: debug
server:
  health_port: %d
  http_port: %d
  media_dir: %s
index:
  path: %s
`, healthPort, httpPort, mediaDir, filepath.Join(dir, "index.db"))
	path := filepath.Join(dir, "flvkit.yaml")
	return path, os.WriteFile(path, []byte(content), 0o600)
}

// StartServe starts `flvkit serve` with the given config.
func StartServe(ctx context.Context, binPath, configPath string) (*exec.Cmd, error) {
	cmd := exec.CommandContext(ctx, binPath, "serve", "-config", configPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start server: %w", err)
	}
	return cmd, nil
}

// WaitForHealth waits for the health endpoint to become available.
// Returns an error if the endpoint is not available within the timeout.
func WaitForHealth(port int, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	url := fmt.Sprintf("http://localhost:%d/healthz", port)

	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("health endpoint not available after %v", timeout)
}

// Run executes the binary and returns stdout and the exit code.
func Run(binPath string, args ...string) (string, int, error) {
	var stdout bytes.Buffer
	cmd := exec.Command(binPath, args...)
	cmd.Stdout = &stdout
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.String(), exitErr.ExitCode(), nil
	}
	return stdout.String(), 0, err
}
