package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lempiji/similarity-d/internal/config"
)

const scanFixture = `package demo

func sumEvens(xs []int) int {
	total := 0
	for _, x := range xs {
		if x%2 == 0 {
			total += x
		}
	}
	return total
}

func addMatching(values []int) int {
	acc := 0
	for _, v := range values {
		if v%2 == 0 {
			acc += v
		}
	}
	return acc
}
`

func setupFixtureDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "demo.go"), []byte(scanFixture), 0o644))
	return dir
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewScanCommand().CreateCobraCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestScanCommand_TextOutput(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := setupFixtureDir(t)

	out, err := runCommand(t, "--min-tokens", "5", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "Similar Functions")
	assert.Contains(t, out, "sumEvens")
	assert.Contains(t, out, "addMatching")
	assert.Contains(t, out, "similarity: 1.000")
}

func TestScanCommand_JSONOutput(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := setupFixtureDir(t)

	out, err := runCommand(t, "--min-tokens", "5", "--json", dir)

	require.NoError(t, err)
	assert.Contains(t, out, `"matches"`)
	assert.Contains(t, out, `"similarity"`)
}

func TestScanCommand_ThresholdFiltersEverything(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	source := "package demo\n\nfunc alpha(x int) int {\n\tv := x + 1\n\tv *= 2\n\tv -= 3\n\treturn v\n}\n\nfunc beta(s string) string {\n\tfor i := 0; i < 3; i++ {\n\t\ts += s\n\t}\n\treturn s\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "demo.go"), []byte(source), 0o644))

	out, err := runCommand(t, "--min-tokens", "5", "--threshold", "0.99", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "No similar functions detected.")
}

func TestScanCommand_MutuallyExclusiveFormats(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := setupFixtureDir(t)

	_, err := runCommand(t, "--json", "--yaml", dir)

	assert.Error(t, err)
}

func TestScanCommand_ConfigFilePrecedence(t *testing.T) {
	work := t.TempDir()
	t.Chdir(work)
	dir := setupFixtureDir(t)

	// The config file demands a perfect score; identical-modulo-rename
	// functions still reach it.
	configPath := filepath.Join(work, config.DefaultConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("[similarity]\nthreshold = 1.0\nmin_tokens = 5\n"), 0o644))

	out, err := runCommand(t, "--config", configPath, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "similarity: 1.000")

	// A changed flag wins over the file value.
	out, err = runCommand(t, "--config", configPath, "--threshold", "0.8", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "similarity: 1.000")
}

func TestScanCommand_ConfigFileOutputFormat(t *testing.T) {
	work := t.TempDir()
	t.Chdir(work)
	dir := setupFixtureDir(t)

	configPath := filepath.Join(work, config.DefaultConfigFileName)
	require.NoError(t, os.WriteFile(configPath,
		[]byte("[similarity]\nmin_tokens = 5\n\n[output]\nformat = \"json\"\n"), 0o644))

	// With no format flag the file's format applies.
	out, err := runCommand(t, "--config", configPath, dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "{"),
		"expected JSON output, got: %s", out)
	assert.Contains(t, out, `"matches"`)

	// An explicit format flag still wins over the file.
	out, err = runCommand(t, "--config", configPath, "--csv", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "left_file,left_function")
}

func TestInitCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := NewInitCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "Created .similarity.toml")
	_, err := os.Stat(config.DefaultConfigFileName)
	assert.NoError(t, err)

	// Without --force a second run refuses to overwrite.
	second := NewInitCmd()
	second.SetOut(&bytes.Buffer{})
	second.SetErr(&bytes.Buffer{})
	assert.Error(t, second.Execute())

	forced := NewInitCmd()
	forced.SetOut(&bytes.Buffer{})
	forced.SetArgs([]string{"--force"})
	assert.NoError(t, forced.Execute())
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "similarity-d")
}
