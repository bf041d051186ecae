package services

import (
	"fmt"
	"os"

	"github.com/custodia-labs/tarika/internal/core/domain"
	"github.com/custodia-labs/tarika/internal/core/ports/driven"
	"github.com/custodia-labs/tarika/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider       = "llm.provider"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMAPIKey         = "llm.api_key"
	keyRequestsPerMinute = "extraction.requests_per_minute"
	keyReportLanguage    = "report.language"
)

// EnvLLMAPIKey overrides llm.api_key when set.
//
//nolint:gosec // G101: environment variable name, not a credential.
const EnvLLMAPIKey = "TARIKA_LLM_API_KEY"

// defaultOllamaURL is used when Ollama is selected without a base URL.
const defaultOllamaURL = "http://localhost:11434"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	if s.configStore == nil {
		return nil, domain.ErrNotImplemented
	}

	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		Extraction: domain.ExtractionSettings{
			RequestsPerMinute: s.getInt(keyRequestsPerMinute, defaults.Extraction.RequestsPerMinute),
		},
		Report: domain.ReportSettings{
			Language: s.getLanguage(defaults.Report.Language),
		},
	}

	if key := os.Getenv(EnvLLMAPIKey); key != "" {
		settings.LLM.APIKey = key
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" && settings.LLM.APIKey != os.Getenv(EnvLLMAPIKey) {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	if err := s.configStore.Set(keyRequestsPerMinute, settings.Extraction.RequestsPerMinute); err != nil {
		return fmt.Errorf("save requests per minute: %w", err)
	}
	if err := s.configStore.Set(keyReportLanguage, settings.Report.Language.String()); err != nil {
		return fmt.Errorf("save report language: %w", err)
	}

	return nil
}

// SetLLMProvider configures the extraction provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else if defaultModel, ok := domain.DefaultLLMModels()[provider]; ok {
		settings.LLM.Model = defaultModel
	}

	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = defaultOllamaURL
		}
	} else {
		// Cloud providers don't need a custom base URL
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetLanguage sets the report language.
func (s *SettingsService) SetLanguage(lang domain.Language) error {
	if !lang.IsValid() {
		return fmt.Errorf("invalid report language: %s", lang)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Report.Language = lang
	return s.Save(settings)
}

// SetRequestsPerMinute sets the extraction throttle.
func (s *SettingsService) SetRequestsPerMinute(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: requests per minute must be positive, got %d", domain.ErrInvalidInput, n)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Extraction.RequestsPerMinute = n
	return s.Save(settings)
}

// Validate checks that the current settings are usable.
// An unset provider is valid: structured records need no LLM.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.LLM.Provider != "" && !settings.LLM.IsConfigured() {
		return fmt.Errorf("LLM provider %q is missing an API key", settings.LLM.Provider.Description())
	}
	if settings.Extraction.RequestsPerMinute <= 0 {
		return fmt.Errorf("requests per minute must be positive, got %d", settings.Extraction.RequestsPerMinute)
	}
	if !settings.Report.Language.IsValid() {
		return fmt.Errorf("invalid report language: %s", settings.Report.Language)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getLanguage(defaultVal domain.Language) domain.Language {
	lang := domain.Language(s.configStore.GetString(keyReportLanguage))
	if !lang.IsValid() {
		return defaultVal
	}
	return lang
}
