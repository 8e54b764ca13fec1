package driving

import "github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set parses value for a single setting key and persists it.
	// Unknown keys and unparseable values return domain.ErrInvalidInput.
	Set(key, value string) error

	// Reset removes a setting so its default applies again.
	Reset(key string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
