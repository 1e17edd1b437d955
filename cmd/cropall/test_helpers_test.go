package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cropall/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	historyDB  string
	inputDir   string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(homeDir, ".config"))

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(homeDir, ".config", "cropall", "cropall.toml"),
		historyDB:  filepath.Join(base, "history.db"),
		inputDir:   filepath.Join(base, "scans"),
	}
	if err := os.MkdirAll(env.inputDir, 0o755); err != nil {
		t.Fatalf("mkdir input: %v", err)
	}
	writeTestConfig(t, env.configPath, env.historyDB)
	return env
}

func writeTestConfig(t *testing.T, path, historyDB string) {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithOutputFolder("crops"))
	cfg.History.Path = historyDB
	testsupport.WriteConfig(t, path, cfg)
}

func writeTestImages(t *testing.T, dir string, names ...string) {
	t.Helper()
	testsupport.WriteFramedImages(t, dir, 40, 30, 0, names...)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
