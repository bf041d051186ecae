package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider used for document extraction.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderGemini is Google Gemini cloud API.
	AIProviderGemini AIProvider = "gemini"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic, AIProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic || p == AIProviderGemini
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderGemini:
		return "Gemini (cloud)"
	default:
		return unknownDescription
	}
}

// Language selects the phrasebook used for report labels and legal wording.
type Language string

// Supported report languages.
const (
	// LanguageEnglish renders wording in English.
	LanguageEnglish Language = "en"

	// LanguageArabic renders wording in Arabic, the language of the instruments.
	LanguageArabic Language = "ar"
)

// IsValid returns true if the language is supported.
func (l Language) IsValid() bool {
	return l == LanguageEnglish || l == LanguageArabic
}

// String returns the string representation.
func (l Language) String() string {
	return string(l)
}

// Description returns a human-readable description of the language.
func (l Language) Description() string {
	switch l {
	case LanguageEnglish:
		return "English"
	case LanguageArabic:
		return "Arabic"
	default:
		return unknownDescription
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or compatible gateways).
	BaseURL string

	// APIKey is the API key (for cloud providers).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// ExtractionSettings holds document extraction behaviour.
type ExtractionSettings struct {
	// RequestsPerMinute throttles calls to the extraction provider.
	RequestsPerMinute int
}

// ReportSettings holds report rendering configuration.
type ReportSettings struct {
	// Language selects labels and legal wording.
	Language Language
}

// AppSettings holds all application settings.
type AppSettings struct {
	// LLM holds the extraction provider settings.
	LLM LLMSettings

	// Extraction holds extraction throttling settings.
	Extraction ExtractionSettings

	// Report holds report rendering settings.
	Report ReportSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured; structured records can be ingested without it.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{},
		Extraction: ExtractionSettings{
			RequestsPerMinute: 30,
		},
		Report: ReportSettings{
			Language: LanguageEnglish,
		},
	}
}

// AllLLMProviders returns providers that can extract documents.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderGemini,
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderOllama,
	}
}

// AllLanguages returns the supported report languages.
func AllLanguages() []Language {
	return []Language{LanguageEnglish, LanguageArabic}
}

// DefaultLLMModels returns default models for each LLM provider.
// Every default accepts image input.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2-vision",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
		AIProviderGemini:    "gemini-2.0-flash",
	}
}
