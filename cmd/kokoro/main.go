// Command kokoro imports Tavern character cards and manages the stored characters.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/adapters/driven/config/file"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/adapters/driven/storage/memory"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/adapters/driven/storage/sqlite"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/adapters/driving/cli"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/connectors/filesystem"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/ports/driven"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/services"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/parsers"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Execute(context.Background(), version, bootstrap); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the adapters behind the CLI.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	var (
		store   driven.CharacterStore
		closeFn func() error
	)
	if opts.Memory {
		store = memory.NewCharacterStore()
	} else {
		settings, err := settingsService.Get()
		if err != nil {
			return nil, fmt.Errorf("loading settings: %w", err)
		}
		dataDir := settings.Storage.DataDir
		if dataDir == "" {
			dataDir = filepath.Join(filepath.Dir(configStore.Path()), "data")
		}
		db, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("opening storage: %w", err)
		}
		store = db.CharacterStore()
		closeFn = db.Close
	}

	characterService := services.NewCharacterService(parsers.NewDefaultRegistry(), store, settingsService)
	watchService := services.NewWatchService(characterService, func(dir string, exts []string) driven.CardWatcher {
		return filesystem.New(dir, filesystem.WithExtensions(exts))
	})

	return &cli.Services{
		Characters: characterService,
		Settings:   settingsService,
		Watch:      watchService,
		Close:      closeFn,
	}, nil
}
