package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/adapters/driven/storage/memory"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/connectors/filesystem"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/ports/driven"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/services"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/parsers"
)

// setupTestServices wires in-memory services into the package variables
// and returns a cleanup that restores the previous ones.
func setupTestServices() func() {
	oldCharacters, oldSettings, oldWatch := characterService, settingsService, watchService

	settings := services.NewSettingsService(memory.NewConfigStore())
	characters := services.NewCharacterService(parsers.NewDefaultRegistry(), memory.NewCharacterStore(), settings)
	watch := services.NewWatchService(characters, func(dir string, exts []string) driven.CardWatcher {
		return filesystem.New(dir, filesystem.WithExtensions(exts), filesystem.WithSettle(20*time.Millisecond))
	})

	characterService, settingsService, watchService = characters, settings, watch

	return func() {
		characterService, settingsService, watchService = oldCharacters, oldSettings, oldWatch
	}
}

// resetFlags restores flag variables that persist between executions.
func resetFlags() {
	verbose, configDir, useMemory = false, "", false
	importJSON, importDryRun = false, false
	inspectFull = false
	characterJSON = false
	watchExisting = false
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	// cobra only hands the root context to a subcommand whose own context
	// is still nil, so a context left over from an earlier run would win.
	setContextTree(ctx, rootCmd)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags()
	})

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

func setContextTree(ctx context.Context, cmd *cobra.Command) {
	cmd.SetContext(ctx)
	for _, c := range cmd.Commands() {
		setContextTree(ctx, c)
	}
}

// importCard stores a JSON card through the service and returns its ID.
func importCard(t *testing.T, filename, card string) string {
	t.Helper()
	result, err := characterService.Import(context.Background(), filename, []byte(card))
	require.NoError(t, err)
	return result.Character.ID
}
