package driving

import "github.com/custodia-labs/tarika/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetLLMProvider configures the extraction provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// SetLanguage sets the report language.
	SetLanguage(lang domain.Language) error

	// SetRequestsPerMinute sets the extraction throttle.
	SetRequestsPerMinute(n int) error

	// Validate checks that the current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
	ValidateLLMConfig() error
}
