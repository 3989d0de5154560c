package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const machineYAML = `
layers:
  - name: base
    nodes:
      - {id: idle, play: {clip: idle}}
      - {id: walk, play: {clip: walk}}
    states:
      - {name: Idle, root: idle}
      - {name: Walk, root: walk}
    transitions:
      - {name: go, from: Idle, to: Walk, duration: 0.2, rule: Go}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "absm version ")
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate", writeFile(t, "ok.yaml", machineYAML))
	require.NoError(t, err)
	assert.Contains(t, out, "Definition is valid!")

	broken := writeFile(t, "broken.yaml", `
layers:
  - states: [{name: A, root: nowhere}]
    transitions: [{name: t, from: A, to: B, rule: x}]
`)
	out, err = run(t, "validate", broken)
	require.Error(t, err)
	assert.Contains(t, out, "layers[0].states[0].root")
	assert.Contains(t, out, "layers[0].transitions[0].to")
}

func TestGraph(t *testing.T) {
	out, err := run(t, "graph", writeFile(t, "ok.yaml", machineYAML))
	require.NoError(t, err)
	assert.Contains(t, out, "L0_Idle -- \"Go 0.2s\" --> L0_Walk")
}

func TestSimulate(t *testing.T) {
	out, err := run(t, "simulate", writeFile(t, "ok.yaml", machineYAML), "--frames", "2", "--dt", "0.1", "--set", "Go=true")
	require.NoError(t, err)
	assert.Contains(t, out, "base=go")
	assert.Contains(t, out, "base=Walk")
}

func TestStoreRoundTrip(t *testing.T) {
	t.Setenv("ABSM_STORE_PATH", filepath.Join(t.TempDir(), "machines"))
	path := writeFile(t, "ok.yaml", machineYAML)

	_, err := run(t, "store", "save", path, "hero")
	require.NoError(t, err)

	out, err := run(t, "store", "list")
	require.NoError(t, err)
	assert.Equal(t, "hero\n", out)

	out, err = run(t, "store", "load", "hero", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "base"`)

	_, err = run(t, "store", "delete", "hero")
	require.NoError(t, err)
	_, err = run(t, "store", "load", "hero")
	assert.Error(t, err)
}

func TestLogFile(t *testing.T) {
	t.Setenv("ABSM_STORE_PATH", filepath.Join(t.TempDir(), "machines"))
	t.Cleanup(func() { _ = rootCmd.PersistentFlags().Set("log-file", "") })
	logPath := filepath.Join(t.TempDir(), "logs", "absm.log")

	_, err := run(t, "store", "save", writeFile(t, "ok.yaml", machineYAML), "hero", "--log-file", logPath)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `msg="machine saved" id=hero`)
}
