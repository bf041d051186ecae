package driven

import "context"

// LLMService provides language model operations for document understanding.
// This is an optional service - when nil, scanned instruments cannot be
// extracted and only structured record files are accepted.
//
// Implementations may include:
//   - Gemini (Google)
//   - OpenAI (GPT-4o family)
//   - Anthropic (Claude)
//   - Ollama (local vision models)
type LLMService interface {
	// Chat conducts a conversation and returns the assistant reply.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string

	// Attachments are files sent inline with the message.
	Attachments []Attachment
}

// Attachment is a file sent inline with a chat message.
type Attachment struct {
	// MimeType is the content type, e.g. "image/jpeg" or "application/pdf".
	MimeType string

	// Data is the raw file content. Adapters encode it as the provider requires.
	Data []byte
}

// IsImage reports whether the attachment is an image.
func (a Attachment) IsImage() bool {
	return len(a.MimeType) > 6 && a.MimeType[:6] == "image/"
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// JSON asks the provider to reply with a single JSON object.
	JSON bool
}
