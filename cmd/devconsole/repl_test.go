package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, input string, args ...string) string {
	t.Helper()
	color.NoColor = true
	root := newRootCmd()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(input))
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.ExecuteContext(context.Background()))
	return out.String()
}

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "state_dir: " + filepath.Join(dir, "state") + "\nnamespace: test\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestReplEvaluatesAgainstPersistentScope(t *testing.T) {
	out := runCLI(t, "let x = 2\nx * 21\n.history\n.exit\n", "repl", "--ephemeral", "--config", writeConfig(t))

	assert.Contains(t, out, "[SYSTEM] Declaration executed")
	assert.Contains(t, out, "[OUTPUT] 42")
	assert.Contains(t, out, "   1  let x = 2")
	assert.Contains(t, out, "   2  x * 21")
}

func TestReplFailureKeepsScope(t *testing.T) {
	out := runCLI(t, "let y = 2;\ny.(\ny\n", "repl", "--ephemeral", "--config", writeConfig(t))

	assert.Contains(t, out, "[ERROR] SyntaxError")
	assert.Contains(t, out, "[OUTPUT] 2")
}

func TestReplHiddenOutputIsReplayedOnShow(t *testing.T) {
	out := runCLI(t, ".hide\nconsole.error('boom')\n.show\n.exit\n", "repl", "--ephemeral", "--config", writeConfig(t))

	hidden := strings.Index(out, "console hidden")
	boom := strings.Index(out, "[EVAL ERROR] boom")
	require.GreaterOrEqual(t, hidden, 0)
	require.Greater(t, boom, hidden)
}

func TestReplRecallRunsPreviousEntry(t *testing.T) {
	out := runCLI(t, "1 + 1\n.up\n\n.history\n", "repl", "--ephemeral", "--config", writeConfig(t))

	assert.Equal(t, 2, strings.Count(out, "[OUTPUT] 2"))
	assert.Contains(t, out, "   1  1 + 1")
	assert.NotContains(t, out, "   2  ")
}

func TestReplClearResetsScope(t *testing.T) {
	out := runCLI(t, "let z = 1\n.clear\nz\n", "repl", "--ephemeral", "--config", writeConfig(t))

	assert.Contains(t, out, "[SYSTEM] Console cleared; evaluation context reset")
	assert.Contains(t, out, "[ERROR] ReferenceError: z is not defined")
}

func TestReplLoadsScriptFile(t *testing.T) {
	script := filepath.Join(t.TempDir(), "init.js")
	require.NoError(t, os.WriteFile(script, []byte("const base = 40;\nbase + 2"), 0o644))

	out := runCLI(t, ".load "+script+"\nbase\n", "repl", "--ephemeral", "--config", writeConfig(t))
	assert.Contains(t, out, "[OUTPUT] 42")
	assert.Contains(t, out, "[OUTPUT] 40")
}

func TestHistoryCommandReadsPersistedHistory(t *testing.T) {
	cfg := writeConfig(t)
	runCLI(t, "let a = 1\n'two'\n.exit\n", "repl", "--config", cfg)

	out := runCLI(t, "", "history", "--config", cfg)
	assert.Equal(t, "   1  let a = 1\n   2  'two'\n", out)
}

func TestIsDotCommand(t *testing.T) {
	assert.True(t, isDotCommand(".exit"))
	assert.False(t, isDotCommand(".5 + 1"))
	assert.False(t, isDotCommand("."))
}
