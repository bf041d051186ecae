package driven

// ConfigStore holds application settings as flat dot-notation keys
// ("llm.provider", "report.language").
type ConfigStore interface {
	// Get returns the raw value and whether the key exists.
	Get(key string) (any, bool)

	// GetString returns the value as a string, or "" when missing or not a string.
	GetString(key string) string

	// GetInt returns the value as an int, or 0 when missing or not numeric.
	GetInt(key string) int

	// Set stores a value. File-backed stores persist it immediately.
	Set(key string, value any) error

	// Save persists the current values.
	Save() error

	// Load re-reads values from storage.
	Load() error

	// Path returns where the values are stored.
	Path() string
}
