package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 2, cfg.Quantum)
	assert.Equal(t, DefaultMaxSlices, cfg.MaxSlices)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rrsched.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quantum: 4\nminimize_chart: true\nformat: table\n"), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Quantum)
	assert.True(t, cfg.MinimizeChart)
	assert.Equal(t, "table", cfg.Format)
	assert.Equal(t, ":9095", cfg.Listen)

	t.Setenv("RRSCHED_QUANTUM", "6")
	t.Setenv("RRSCHED_LISTEN", "127.0.0.1:8080")
	t.Setenv("RRSCHED_MAX_SLICES", "500")
	cfg, err = Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Quantum)
	assert.Equal(t, 500, cfg.MaxSlices)
	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"zero quantum":        "quantum: 0\n",
		"unknown format":      "format: xml\n",
		"empty listen":        "listen: \"\"\n",
		"zero max slices":     "max_slices: 0\n",
		"negative max slices": "max_slices: -1\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "rrsched.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := Load(New(), path)
			assert.Error(t, err)
		})
	}

	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
