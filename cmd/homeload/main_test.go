package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/homeload/internal/config"
	"github.com/jgoulah/homeload/pkg/models"
)

const applianceYAML = `appliances:
  - name: Fridge
    power_watts: 150
    quantity: 1
    daily_hours: 24
  - name: Lamp
    power_watts: 60
    quantity: 2
    daily_hours: 5
  - name: Heater
    power_watts: 2000
    quantity: 1
    daily_hours: 30
`

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return executeWithConfig(t, filepath.Join(t.TempDir(), "config.yaml"), stdin, args...)
}

func executeWithConfig(t *testing.T, configPath, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestAnalyzeCommandText(t *testing.T) {
	path := writeFile(t, t.TempDir(), "home.yaml", applianceYAML)

	stdout, stderr, err := execute(t, "", "analyze", path, "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, stderr, "⚠ Skipped row 3 Heater:\n  - Daily usage cannot exceed 24 hours")
	assert.Contains(t, stdout, "Total Energy Consumed: 4.20 kWh/day")
	assert.Contains(t, stdout, "  • Fridge (3.60 kWh/day)")
	assert.Contains(t, stdout, "  • Lamp (0.60 kWh/day)")
	assert.Contains(t, stdout, "Average Energy per Appliance: 2.10 kWh/day")
}

func TestAnalyzeCommandJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "home.csv", "name,power_watts,quantity,daily_hours\nFridge,150,1,24\nLamp,60,2,5\n")

	stdout, _, err := execute(t, "", "analyze", path, "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Summary models.SummaryRecord `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, 2, doc.Summary.Count)
	assert.Equal(t, "Fridge", doc.Summary.Max.Name)
}

func TestAnalyzeCommandNoValidRows(t *testing.T) {
	path := writeFile(t, t.TempDir(), "home.csv", "name,power_watts,quantity,daily_hours\nHeater,2000,1,30\n")

	_, _, err := execute(t, "", "analyze", path, "--format", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid appliances")
}

func TestListCommand(t *testing.T) {
	path := writeFile(t, t.TempDir(), "home.yaml", applianceYAML)

	stdout, _, err := execute(t, "", "list", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Fridge")
	assert.Contains(t, stdout, "Total: 4.20 kWh/day (2 appliances)")
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "home.yaml", applianceYAML)

	for _, name := range []string{"report.xlsx", "report.pdf"} {
		out := filepath.Join(dir, "out", name)
		stdout, _, err := execute(t, "", "export", path, "--out", out)
		require.NoError(t, err)
		assert.Contains(t, stdout, "✓ Wrote")

		info, err := os.Stat(out)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestPromptCommand(t *testing.T) {
	stdin := "Fridge\n150\n1\n24\nyes\nHeater\n2000\n1\n30\nLamp\n60\n2\n5\nno\n"

	stdout, _, err := execute(t, stdin, "prompt")
	require.NoError(t, err)
	assert.Contains(t, stdout, "  - Daily usage cannot exceed 24 hours")
	assert.Contains(t, stdout, "Total Energy Consumed: 4.20 kWh/day")
	assert.Contains(t, stdout, "▲ Fridge")
	assert.Contains(t, stdout, "▼ Lamp")
}

func TestPromptCommandEmpty(t *testing.T) {
	stdout, _, err := execute(t, "", "prompt")
	require.NoError(t, err)
	assert.Contains(t, stdout, "⚠ No appliances to analyze")
}

func TestPublishCommandRequiresTarget(t *testing.T) {
	path := writeFile(t, t.TempDir(), "home.yaml", applianceYAML)

	_, _, err := execute(t, "", "publish", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enabled in config")
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	stdout, _, err := executeWithConfig(t, path, "", "config", "init", "--force=false")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ Wrote "+path)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), loaded)

	_, _, err = executeWithConfig(t, path, "", "config", "init", "--force=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = executeWithConfig(t, path, "", "config", "init", "--force")
	require.NoError(t, err)
}

func TestWholeNumberDecimals(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "config.yaml", "decimals: 0\n")
	path := writeFile(t, dir, "home.yaml", applianceYAML)

	stdout, _, err := executeWithConfig(t, configPath, "", "analyze", path, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Total Energy Consumed: 4 kWh/day")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(strings.NewReader("Fridge\n")))

	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f))
}
