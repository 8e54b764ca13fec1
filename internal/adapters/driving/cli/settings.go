package cli

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"settings"},
	Short:   "Manage application settings",
	Long: `View and change settings stored in config.toml.

Keys:
  storage.data_dir      directory holding the character database
  import.max_file_size  largest card file accepted, e.g. 32MiB (0 = unlimited)
  log.verbose           always log debug output (true/false)
  watch.dir             default directory for 'kokoro watch'`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Restore a setting to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsUnset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsUnsetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Data dir: %s\n", orDefault(settings.Storage.DataDir, "(default)"))
	cmd.Println()

	cmd.Println("[Import]")
	cmd.Printf("  Max file size: %s\n", formatSize(settings.Import.MaxFileSize))
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  Verbose: %t\n", settings.Log.Verbose)
	cmd.Println()

	cmd.Println("[Watch]")
	cmd.Printf("  Dir: %s\n", orDefault(settings.Watch.Dir, "(not set)"))

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("%s updated.\n", key)
	return nil
}

func runSettingsUnset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Reset(args[0]); err != nil {
		return fmt.Errorf("failed to unset %s: %w", args[0], err)
	}
	cmd.Printf("%s restored to default.\n", args[0])
	return nil
}

func formatSize(n int64) string {
	if n <= 0 {
		return "unlimited"
	}
	if n == domain.DefaultMaxFileSize {
		return humanize.IBytes(uint64(n)) + " (default)"
	}
	return humanize.IBytes(uint64(n))
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
