package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"checkers/internal/checkers"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"side too small", func(c *Config) { c.Side = 3 }, false},
		{"side too large", func(c *Config) { c.Side = 27 }, false},
		{"largest side", func(c *Config) { c.Side = 26 }, true},
		{"empty addr", func(c *Config) { c.Addr = " " }, false},
		{"bad level", func(c *Config) { c.LogLevel = "chatty" }, false},
		{"empty save dir", func(c *Config) { c.SaveDir = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}

	c := Default()
	c.Side = 2
	require.ErrorIs(t, c.Validate(), checkers.ErrInvalidSide)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	loaded, err := LoadDotEnv(filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	require.False(t, loaded)

	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CHECKERS_SAVE_DIR=/tmp/saves\nCHECKERS_ADDR=:9999\n"), 0o600))
	t.Setenv(EnvAddr, ":7000")
	os.Unsetenv(EnvSaveDir)
	t.Cleanup(func() { os.Unsetenv(EnvSaveDir) })

	loaded, err = LoadDotEnv(path)
	require.NoError(t, err)
	require.True(t, loaded)
	require.Equal(t, "/tmp/saves", os.Getenv(EnvSaveDir))
	require.Equal(t, ":7000", os.Getenv(EnvAddr), "existing variables win")
}
