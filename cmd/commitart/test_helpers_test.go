package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

type cliTestEnv struct {
	server     *httptest.Server
	configPath string
	stateDir   string
	baseDir    string
}

type identity struct {
	token, owner, email string
}

var testIdentity = identity{token: "test-token", owner: "octocat", email: "octocat@example.com"}

func setupCLITestEnv(t *testing.T, handler http.Handler) *cliTestEnv {
	return setupCLITestEnvWithIdentity(t, handler, testIdentity)
}

func setupCLITestEnvWithIdentity(t *testing.T, handler http.Handler, id identity) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	for _, key := range []string{"COMMITART_TOKEN", "COMMITART_OWNER", "COMMITART_EMAIL", "COMMITART_NTFY_TOPIC"} {
		t.Setenv(key, "")
	}

	if handler == nil {
		handler = http.NotFoundHandler()
	}
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	env := &cliTestEnv{
		server:     server,
		configPath: filepath.Join(base, "commitart.toml"),
		stateDir:   filepath.Join(base, "state"),
		baseDir:    base,
	}
	writeTestConfig(t, env, id)
	return env
}

func writeTestConfig(t *testing.T, env *cliTestEnv, id identity) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
state_dir = %q
log_dir = %q

[remote]
base_url = %q
token = %q
owner = %q
email = %q

[executor]
initial_delay_ms = 1
jitter_ms = 0
`,
		env.stateDir,
		filepath.Join(env.baseDir, "logs"),
		env.server.URL,
		id.token,
		id.owner,
		id.email,
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
