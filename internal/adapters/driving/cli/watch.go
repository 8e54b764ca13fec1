package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/connectors/filesystem"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/ports/driving"
)

var watchExisting bool

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Import cards dropped into a directory",
	Long: `Watches a directory tree and imports every .png or .json card that is
created or written in it. Hidden files and directories are ignored.

The directory defaults to the watch.dir setting. Use --existing to import
the cards already present before watching. Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "import cards already in the directory first")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchService == nil {
		return errors.New("watch service not configured")
	}

	dir := ""
	if len(args) > 0 {
		dir = args[0]
	} else if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			dir = settings.Watch.Dir
		}
	}
	if dir == "" {
		return errors.New("no directory given and watch.dir is not set")
	}

	path, err := filesystem.ResolvePath(dir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (Ctrl-C to stop)\n", path)
	err = watchService.Watch(ctx, path, watchExisting, func(ev driving.WatchEvent) {
		if ev.Err != nil {
			cmd.PrintErrf("FAIL %s: %v\n", ev.Path, ev.Err)
			return
		}
		c := ev.Result.Character
		cmd.Printf("OK   %s: %q as %s\n", ev.Path, c.Profile.Name, c.ID)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
