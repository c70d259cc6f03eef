package config

import (
	"testing"

	"pharmarisk/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "MODEL_PATH", "MOCK_LOT_COUNT", "MOCK_SEED", "PPROF_ENABLED", "PPROF_PORT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, DefaultModelPath, cfg.Model.Path)
	assert.Equal(t, DefaultLotCount, cfg.Data.LotCount)
	assert.Equal(t, int64(0), cfg.Data.Seed)
	assert.False(t, cfg.Profiling.Enabled)
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MODEL_PATH", "/models/risk.json")
	t.Setenv("MOCK_LOT_COUNT", "250")
	t.Setenv("MOCK_SEED", "77")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_PORT", "6061")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/models/risk.json", cfg.Model.Path)
	assert.Equal(t, 250, cfg.Data.LotCount)
	assert.Equal(t, int64(77), cfg.Data.Seed)
	assert.True(t, cfg.Profiling.Enabled)
	assert.Equal(t, "6061", cfg.Profiling.Port)
}

func TestLoadIgnoresUnparsableNumbers(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MOCK_LOT_COUNT", "many")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultLotCount, cfg.Data.LotCount)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Server: ServerConfig{Port: "8080"},
		Model:  ModelConfig{Path: DefaultModelPath},
		Data:   DataConfig{LotCount: 10},
	}
	require.NoError(t, Validate(&valid))

	cases := map[string]func(c *Config){
		"empty port":      func(c *Config) { c.Server.Port = "" },
		"non-numeric":     func(c *Config) { c.Server.Port = "http" },
		"no model":        func(c *Config) { c.Model.Path = "" },
		"zero lots":       func(c *Config) { c.Data.LotCount = 0 },
		"pprof collision": func(c *Config) { c.Profiling = ProfilingConfig{Enabled: true, Port: "8080"} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			err := Validate(&cfg)
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
