// Package testutil provides shared test utilities for chaperone tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chaperonehq/chaperone/internal/config"
	"github.com/chaperonehq/chaperone/internal/constants"
)

// SetupTestConfig creates a temporary config directory with test
// configuration. Returns a cleanup function that should be deferred.
func SetupTestConfig(t *testing.T, configContent string) func() {
	t.Helper()

	tmpDir := t.TempDir()
	os.Setenv(constants.EnvConfigDir, tmpDir)

	if configContent != "" {
		configPath := filepath.Join(tmpDir, constants.ConfigFileName)
		if err := os.WriteFile(configPath, []byte(configContent), constants.FileMode); err != nil {
			t.Fatal(err)
		}
	}

	config.Reset()
	config.Init()

	return func() {
		os.Unsetenv(constants.EnvConfigDir)
		config.Reset()
	}
}

// MinimalTestConfig is a minimal config for testing.
const MinimalTestConfig = `
[[file.rules]]
label = "TODO marker"
pattern = 'TODO:'

[[result.rules]]
label = "TODO marker"
pattern = 'TODO:|FIXME:'

[[gates]]
agent = "code-quality-reviewer"
required = ['test|lint']
min_lines = 3
`
