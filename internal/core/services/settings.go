package services

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/ports/driven"
	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			DataDir: s.configStore.GetString(domain.KeyStorageDataDir),
		},
		Import: domain.ImportSettings{
			MaxFileSize: s.getSize(domain.KeyImportMaxFileSize, defaults.Import.MaxFileSize),
		},
		Log: domain.LogSettings{
			Verbose: s.getBool(domain.KeyLogVerbose, defaults.Log.Verbose),
		},
		Watch: domain.WatchSettings{
			Dir: s.configStore.GetString(domain.KeyWatchDir),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}

	values := []struct {
		key   string
		value any
	}{
		{domain.KeyStorageDataDir, settings.Storage.DataDir},
		{domain.KeyImportMaxFileSize, settings.Import.MaxFileSize},
		{domain.KeyLogVerbose, settings.Log.Verbose},
		{domain.KeyWatchDir, settings.Watch.Dir},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("failed to save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value for key and persists it.
// import.max_file_size accepts plain byte counts or sizes such as "16 MiB".
func (s *SettingsService) Set(key, value string) error {
	var parsed any

	switch key {
	case domain.KeyStorageDataDir, domain.KeyWatchDir:
		parsed = strings.TrimSpace(value)
	case domain.KeyImportMaxFileSize:
		size, err := ParseSize(value)
		if err != nil {
			return err
		}
		parsed = size
	case domain.KeyLogVerbose:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		parsed = b
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Reset removes key from the configuration so its default applies.
func (s *SettingsService) Reset(key string) error {
	if !slices.Contains(domain.SettingKeys(), key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err := s.configStore.Unset(key); err != nil {
		return fmt.Errorf("failed to reset %s: %w", key, err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ParseSize parses a byte count such as "1048576", "512KB" or "16 MiB".
func ParseSize(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("%w: size must not be negative", domain.ErrInvalidInput)
		}
		return n, nil
	}

	n, err := humanize.ParseBytes(value)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid size %q", domain.ErrInvalidInput, value)
	}
	return int64(n), nil //nolint:gosec // G115: sizes beyond int64 are not realistic config values
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

// getSize reads a byte count. An explicit 0 is kept because it disables the limit.
func (s *SettingsService) getSize(key string, defaultVal int64) int64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return int64(s.configStore.GetInt(key))
}
