package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--data-dir", dataDir, "--backend", "file"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestProfileAndRitualCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "no profile")

	out, err = run(t, dir, "profile", "set", "--tradition", "vaishnava", "--region", "north", "--language", "hi", "--time", "05:30")
	require.NoError(t, err)
	assert.Contains(t, out, "tradition=vaishnava")
	assert.Contains(t, out, "daily_time=05:30")

	out, err = run(t, dir, "ritual", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "0/")

	out, err = run(t, dir, "ritual", "complete")
	require.NoError(t, err)
	assert.Contains(t, out, "completed ")

	out, err = run(t, dir, "streak")
	require.NoError(t, err)
	assert.Contains(t, out, "current=0")
	assert.Contains(t, out, "last=never")

	out, err = run(t, dir, "stats", "week")
	require.NoError(t, err)
	assert.Contains(t, out, "1 steps")
}

func TestKidModeProfileShowsKidFriendlySteps(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "profile", "set", "--kid-mode")
	require.NoError(t, err)

	out, err := run(t, dir, "ritual", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Make a Wish (Saṅkalpa)")
	assert.Contains(t, out, "Say Hi to Gaṇeśa")
}

func TestFlowsList(t *testing.T) {
	out, err := run(t, t.TempDir(), "flows", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "andhra_smarta")
	assert.Contains(t, out, "vaishnava")
}

func TestGuideExportWritesFiles(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, dir, "guide", "export", "--tradition", "andhra_smarta", "--region", "south", "--html")
	require.NoError(t, err)
	assert.Contains(t, out, "andhra-smarta-south.md")
	assert.Contains(t, out, "andhra-smarta-south.html")

	_, err = os.Stat(filepath.Join(dir, "guides", "andhra-smarta-south.md"))
	assert.NoError(t, err)
}

func TestProgressExportAndClear(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "profile", "set")
	require.NoError(t, err)

	target := filepath.Join(dir, "export.json")
	out, err := run(t, dir, "progress", "export", "--out", target)
	require.NoError(t, err)
	assert.Contains(t, out, "exported to")
	payload, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(payload), "andhra_smarta")

	_, err = run(t, dir, "progress", "clear")
	assert.Error(t, err)

	out, err = run(t, dir, "progress", "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "removed")

	out, err = run(t, dir, "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "no profile")
}

func TestTimerRejectsBadMinutes(t *testing.T) {
	_, err := run(t, t.TempDir(), "timer", "run", "0")
	assert.Error(t, err)
	_, err = run(t, t.TempDir(), "timer", "run", "soon")
	assert.Error(t, err)
}
