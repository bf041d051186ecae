package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tarika/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tarika/internal/core/domain"
)

type mockAIValidator struct {
	validateLLM func(config *domain.LLMSettings) error
}

func (m *mockAIValidator) ValidateLLM(config *domain.LLMSettings) error {
	if m.validateLLM != nil {
		return m.validateLLM(config)
	}
	return nil
}

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	t.Setenv(EnvLLMAPIKey, "")
	service := NewSettingsService(memory.NewConfigStore(), nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	t.Setenv(EnvLLMAPIKey, "")
	store := memory.NewConfigStore()
	_ = store.Set("llm.provider", "gemini")
	_ = store.Set("llm.model", "gemini-1.5-pro")
	_ = store.Set("llm.api_key", "stored-key")
	_ = store.Set("extraction.requests_per_minute", 10)
	_ = store.Set("report.language", "ar")

	settings, err := NewSettingsService(store, nil).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderGemini, settings.LLM.Provider)
	assert.Equal(t, "gemini-1.5-pro", settings.LLM.Model)
	assert.Equal(t, "stored-key", settings.LLM.APIKey)
	assert.Equal(t, 10, settings.Extraction.RequestsPerMinute)
	assert.Equal(t, domain.LanguageArabic, settings.Report.Language)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("llm.provider", "invalid_provider")
	_ = store.Set("report.language", "fr")
	_ = store.Set("extraction.requests_per_minute", -5)

	settings, err := NewSettingsService(store, nil).Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.LLM.Provider, settings.LLM.Provider)
	assert.Equal(t, defaults.Report.Language, settings.Report.Language)
	assert.Equal(t, defaults.Extraction.RequestsPerMinute, settings.Extraction.RequestsPerMinute)
}

func TestSettingsService_Get_EnvironmentKeyOverrides(t *testing.T) {
	t.Setenv(EnvLLMAPIKey, "env-key")
	store := memory.NewConfigStore()
	_ = store.Set("llm.api_key", "stored-key")

	settings, err := NewSettingsService(store, nil).Get()

	require.NoError(t, err)
	assert.Equal(t, "env-key", settings.LLM.APIKey)
}

func TestSettingsService_Get_NilStore(t *testing.T) {
	_, err := NewSettingsService(nil, nil).Get()
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestSettingsService_Save(t *testing.T) {
	t.Setenv(EnvLLMAPIKey, "")
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: domain.AIProviderOpenAI,
			Model:    "gpt-4o",
			APIKey:   "sk-test",
		},
		Extraction: domain.ExtractionSettings{RequestsPerMinute: 12},
		Report:     domain.ReportSettings{Language: domain.LanguageArabic},
	}

	require.NoError(t, service.Save(settings))

	assert.Equal(t, "openai", store.GetString("llm.provider"))
	assert.Equal(t, "gpt-4o", store.GetString("llm.model"))
	assert.Equal(t, "sk-test", store.GetString("llm.api_key"))
	assert.Equal(t, 12, store.GetInt("extraction.requests_per_minute"))
	assert.Equal(t, "ar", store.GetString("report.language"))

	loaded, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestSettingsService_Save_DoesNotPersistEnvironmentKey(t *testing.T) {
	t.Setenv(EnvLLMAPIKey, "env-key")
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	settings, err := service.Get()
	require.NoError(t, err)
	require.NoError(t, service.Save(settings))

	assert.Empty(t, store.GetString("llm.api_key"))
}

func TestSettingsService_SetLLMProvider(t *testing.T) {
	tests := []struct {
		name        string
		provider    domain.AIProvider
		model       string
		apiKey      string
		wantModel   string
		wantBaseURL string
	}{
		{
			name:        "ollama gets local url and default model",
			provider:    domain.AIProviderOllama,
			wantModel:   "llama3.2-vision",
			wantBaseURL: "http://localhost:11434",
		},
		{
			name:      "gemini default model",
			provider:  domain.AIProviderGemini,
			apiKey:    "g-key",
			wantModel: "gemini-2.0-flash",
		},
		{
			name:      "openai explicit model",
			provider:  domain.AIProviderOpenAI,
			model:     "gpt-4o",
			apiKey:    "sk-test",
			wantModel: "gpt-4o",
		},
		{
			name:      "anthropic default model",
			provider:  domain.AIProviderAnthropic,
			apiKey:    "sk-ant",
			wantModel: "claude-3-5-sonnet-latest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvLLMAPIKey, "")
			service := NewSettingsService(memory.NewConfigStore(), nil)

			require.NoError(t, service.SetLLMProvider(tt.provider, tt.model, tt.apiKey))

			settings, err := service.Get()
			require.NoError(t, err)
			assert.Equal(t, tt.provider, settings.LLM.Provider)
			assert.Equal(t, tt.wantModel, settings.LLM.Model)
			assert.Equal(t, tt.wantBaseURL, settings.LLM.BaseURL)
			assert.Equal(t, tt.apiKey, settings.LLM.APIKey)
		})
	}
}

func TestSettingsService_SetLLMProvider_RequiresAPIKey(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	err := service.SetLLMProvider(domain.AIProviderGemini, "", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key required")
}

func TestSettingsService_SetLLMProvider_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	err := service.SetLLMProvider(domain.AIProvider("mistral"), "", "key")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid LLM provider")
}

func TestSettingsService_SetLanguage(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	require.NoError(t, service.SetLanguage(domain.LanguageArabic))
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageArabic, settings.Report.Language)

	assert.Error(t, service.SetLanguage(domain.Language("fr")))
}

func TestSettingsService_SetRequestsPerMinute(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	require.NoError(t, service.SetRequestsPerMinute(5))
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 5, settings.Extraction.RequestsPerMinute)

	err = service.SetRequestsPerMinute(0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_Validate(t *testing.T) {
	t.Setenv(EnvLLMAPIKey, "")

	t.Run("defaults are valid", func(t *testing.T) {
		service := NewSettingsService(memory.NewConfigStore(), nil)
		assert.NoError(t, service.Validate())
	})

	t.Run("cloud provider without key", func(t *testing.T) {
		store := memory.NewConfigStore()
		_ = store.Set("llm.provider", "openai")
		service := NewSettingsService(store, nil)

		err := service.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API key")
	})

	t.Run("local provider without key", func(t *testing.T) {
		store := memory.NewConfigStore()
		_ = store.Set("llm.provider", "ollama")
		service := NewSettingsService(store, nil)

		assert.NoError(t, service.Validate())
	})
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

func TestSettingsService_ValidateLLMConfig(t *testing.T) {
	t.Run("no validator", func(t *testing.T) {
		service := NewSettingsService(memory.NewConfigStore(), nil)
		assert.NoError(t, service.ValidateLLMConfig())
	})

	t.Run("validator error is returned", func(t *testing.T) {
		pingErr := errors.New("unreachable")
		var seen *domain.LLMSettings
		validator := &mockAIValidator{validateLLM: func(config *domain.LLMSettings) error {
			seen = config
			return pingErr
		}}
		store := memory.NewConfigStore()
		_ = store.Set("llm.provider", "ollama")
		service := NewSettingsService(store, validator)

		err := service.ValidateLLMConfig()

		assert.ErrorIs(t, err, pingErr)
		require.NotNil(t, seen)
		assert.Equal(t, domain.AIProviderOllama, seen.Provider)
	})
}
