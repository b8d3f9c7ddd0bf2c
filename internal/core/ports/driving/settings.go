package driving

import "github.com/custodia-labs/rfcdocs/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings with defaults applied.
	Get() (*domain.Settings, error)

	// Save persists application settings.
	Save(settings *domain.Settings) error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings

	// Keys lists the setting keys accepted by Update.
	Keys() []string

	// Update validates and persists a single setting given as text.
	// Unknown keys and malformed values are invalid arguments.
	Update(key, value string) error
}
