package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/logger"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "kokoro", rootCmd.Use)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "config-dir", "memory"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"import", "inspect", "character", "watch", "mcp", "config", "version"} {
		assert.True(t, names[want], "missing %s command", want)
	}
}

func TestBootstrap_ReceivesFlags(t *testing.T) {
	oldCharacters, oldSettings, oldWatch := characterService, settingsService, watchService
	characterService, settingsService, watchService = nil, nil, nil
	defer func() {
		characterService, settingsService, watchService = oldCharacters, oldSettings, oldWatch
		bootstrap = nil
	}()

	var got Options
	closed := false
	bootstrap = func(opts Options) (*Services, error) {
		got = opts
		cleanup := setupTestServices()
		s := &Services{
			Characters: characterService,
			Settings:   settingsService,
			Watch:      watchService,
			Close: func() error {
				closed = true
				return nil
			},
		}
		cleanup()
		return s, nil
	}

	out, err := execute(t, "--memory", "--config-dir", "/tmp/kokoro-test", "character", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No characters imported.")
	assert.Equal(t, Options{ConfigDir: "/tmp/kokoro-test", Memory: true}, got)
	assert.True(t, closed)
}

func TestBootstrap_ErrorAbortsCommand(t *testing.T) {
	oldCharacters := characterService
	characterService = nil
	defer func() {
		characterService = oldCharacters
		bootstrap = nil
	}()

	bootstrap = func(Options) (*Services, error) {
		return nil, errors.New("database is locked")
	}

	_, err := execute(t, "character", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
}

func TestVerboseSetting_EnablesLogger(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer logger.Reset()

	require.NoError(t, settingsService.Set("log.verbose", "true"))

	_, err := execute(t, "character", "list")

	require.NoError(t, err)
	assert.True(t, logger.IsVerbose())
}

func TestRequireCharacters(t *testing.T) {
	old := characterService
	characterService = nil
	defer func() { characterService = old }()

	for _, args := range [][]string{
		{"import", "a.png"},
		{"character", "list"},
		{"character", "show", "x"},
		{"character", "delete", "x"},
	} {
		_, err := execute(t, args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "character service not configured")
	}
}
