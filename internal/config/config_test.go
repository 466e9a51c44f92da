package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadConfigFrom_Defaults(t *testing.T) {
	cfg, info, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.Empty(t, info.Path)
	assert.False(t, info.PortSpecified)
}

func TestLoadConfigFrom_Toml(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.toml", `
[server]
port = 18080

[data]
driver = "memory"

[rates]
employment_insurance_rate = 0.01

[business]
target_margin = 20
`)

	cfg, info, err := LoadConfigFrom(dir)
	require.NoError(t, err)

	assert.True(t, info.PortSpecified)
	assert.Equal(t, 18080, cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Data.Driver)
	assert.Equal(t, 0.01, cfg.Rates.EmploymentInsuranceRate)
	assert.Equal(t, 0.003, cfg.Rates.WorkersCompRate, "unset keys keep defaults")
	assert.Equal(t, 20.0, cfg.Business.TargetMargin)
	assert.Equal(t, "data", cfg.Data.DataDir)
}

func TestLoadConfigFrom_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.toml", "[server]\nport = 18080\n")
	t.Setenv(EnvPort, "19090")
	t.Setenv(EnvWorkersCompRate, "0.004")

	cfg, info, err := LoadConfigFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, 19090, cfg.Server.Port)
	assert.Equal(t, 0.004, cfg.Rates.WorkersCompRate)
	assert.ElementsMatch(t, []string{EnvPort, EnvWorkersCompRate}, info.EnvOverrides)
}

func TestLoadConfigFrom_DotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "ARARI_DATA_DIR=/tmp/arari-test\n")
	t.Cleanup(func() { os.Unsetenv(EnvDataDir) })

	cfg, _, err := LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/arari-test", cfg.Data.DataDir)
	assert.Equal(t, DriverSQLite, cfg.Data.Driver)
}

func TestLoadConfigFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
		env  map[string]string
	}{
		{"不正なドライバ", "[data]\ndriver = \"postgres\"\n", nil},
		{"料率が範囲外", "[rates]\nworkers_comp_rate = 1.5\n", nil},
		{"警告が目標を超える", "[business]\nwarning_margin = 30\n", nil},
		{"環境変数が数値でない", "", map[string]string{EnvPort: "abc"}},
		{"TOML構文エラー", "[server\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.toml != "" {
				writeFile(t, dir, "config.toml", tt.toml)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, _, err := LoadConfigFrom(dir)
			assert.Error(t, err)
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Business.TopN = 8

	require.NoError(t, SaveConfig(dir, cfg))

	loaded, _, err := LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, 8, loaded.Business.TopN)
}

func TestEnsureDataDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.DataDir = filepath.Join(t.TempDir(), "store")

	dir, err := EnsureDataDir(cfg)
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(dir, "exports"))
	assert.Equal(t, filepath.Join(dir, "arari.db"), DatabasePath(dir))
}
