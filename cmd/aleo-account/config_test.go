package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suffix-labs/aleo-account/pkg/account"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), defaultConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "log_level: debug\nkdf:\n  time: 2\n  memory_kib: 1024\n")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, account.KDFParams{
		Time:      2,
		MemoryKiB: 1024,
		Threads:   account.DefaultKDFParams().Threads,
	}, cfg.KDF)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"bad yaml", "log_level: [debug"},
		{"bad level", "log_level: loud\n"},
		{"zero time", "kdf:\n  time: 0\n"},
		{"too little memory", "kdf:\n  memory_kib: 4\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.contents))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSetLogLevels(t *testing.T) {
	assert.NoError(t, setLogLevels("trace"))
	assert.Error(t, setLogLevels("verbose"))
	assert.NoError(t, setLogLevels("off"))
}
