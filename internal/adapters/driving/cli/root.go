// Package cli provides the kokoro command-line interface.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/ports/driving"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/logger"
)

// skipServices marks commands that run without the service graph.
const skipServices = "kokoro/skip-services"

var version = "dev"

// Services injected by the bootstrap or by tests.
var (
	characterService driving.CharacterService
	settingsService  driving.SettingsService
	watchService     driving.WatchService
	closeServices    func() error
)

var (
	verbose   bool
	configDir string
	useMemory bool
)

// Options carries the global flags the bootstrap needs.
type Options struct {
	// ConfigDir overrides the configuration directory.
	ConfigDir string

	// Memory selects in-memory storage instead of SQLite.
	Memory bool
}

// Services is the service graph a command runs against.
type Services struct {
	Characters driving.CharacterService
	Settings   driving.SettingsService
	Watch      driving.WatchService

	// Close releases storage. It may be nil.
	Close func() error
}

// Bootstrap builds the service graph once flags are parsed.
type Bootstrap func(opts Options) (*Services, error)

var bootstrap Bootstrap

var rootCmd = &cobra.Command{
	Use:   "kokoro",
	Short: "Import and manage Kokoro character cards",
	Long: `kokoro imports character cards in the Tavern format.

Cards are read from PNG images (tEXt or iTXt "chara" chunk) or from plain
JSON files, normalised into a character profile and stored locally.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupServices,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return teardownServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default $KOKORO_HOME or ~/.kokoro)")
	rootCmd.PersistentFlags().BoolVar(&useMemory, "memory", false, "use in-memory storage; nothing is persisted")
}

// Execute runs the root command with the given build version and bootstrap.
func Execute(ctx context.Context, buildVersion string, b Bootstrap) error {
	if buildVersion != "" {
		version = buildVersion
	}
	bootstrap = b
	err := rootCmd.ExecuteContext(ctx)
	if cerr := teardownServices(); err == nil {
		err = cerr
	}
	return err
}

func setupServices(cmd *cobra.Command, _ []string) error {
	if verbose {
		logger.SetVerbose(true)
	}
	if cmd.Annotations[skipServices] == "true" {
		return nil
	}

	if bootstrap != nil && characterService == nil {
		s, err := bootstrap(Options{ConfigDir: configDir, Memory: useMemory})
		if err != nil {
			return err
		}
		characterService = s.Characters
		settingsService = s.Settings
		watchService = s.Watch
		closeServices = s.Close
	}

	if !verbose && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil && settings.Log.Verbose {
			logger.SetVerbose(true)
		}
	}
	return nil
}

func teardownServices() error {
	if closeServices == nil {
		return nil
	}
	closeFn := closeServices
	closeServices = nil
	return closeFn()
}

func requireCharacters() error {
	if characterService == nil {
		return errors.New("character service not configured")
	}
	return nil
}
