// Package llm extracts instruments from scans and PDFs with a multimodal LLM.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/tarika/internal/core/domain"
	"github.com/custodia-labs/tarika/internal/core/ports/driven"
	"github.com/custodia-labs/tarika/internal/logger"
)

// Ensure Extractor implements the interfaces.
var (
	_ driven.Extractor        = (*Extractor)(nil)
	_ driven.PromptStoreAware = (*Extractor)(nil)
)

// userInstruction accompanies every attached instrument.
const userInstruction = "Analyse this instrument:"

// defaultPrompt is used when no PromptStore is configured.
const defaultPrompt = `Read the attached court instrument and reply with a single JSON object with the fields
docType ("HOSR" or "POA"), issueDate (YYYY-MM-DD), deceasedName, heirs [{name, relation, idNo}],
agentName and principals. Reply with JSON only.`

// maxTokens bounds the reply; a disclosure with many heirs stays well below it.
const maxTokens = 4096

// supportedMIMETypes are the attachment types the providers accept.
var supportedMIMETypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/gif":       true,
	"image/heic":      true,
	"image/heif":      true,
}

// Extractor sends each file to an LLM with the extraction prompt.
type Extractor struct {
	llm         driven.LLMService
	promptStore driven.PromptStore
}

// New creates an LLM extractor. llm may be nil, in which case every
// extraction fails with domain.ErrLLMUnavailable.
func New(llm driven.LLMService) *Extractor {
	return &Extractor{llm: llm}
}

// SetPromptStore sets the store the extraction prompt is loaded from.
func (e *Extractor) SetPromptStore(store driven.PromptStore) {
	e.promptStore = store
}

// Name identifies the extractor.
func (e *Extractor) Name() string {
	if e.llm == nil {
		return "llm"
	}
	return "llm:" + e.llm.ModelName()
}

// Supports reports whether input is a scan or PDF.
func (e *Extractor) Supports(input driven.ExtractionInput) bool {
	return supportedMIMETypes[baseMIMEType(input.MimeType)]
}

// Extract asks the LLM for the record held in input.
func (e *Extractor) Extract(ctx context.Context, input driven.ExtractionInput) (*domain.Document, error) {
	if e.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: e.loadPrompt()},
		{
			Role:    "user",
			Content: userInstruction,
			Attachments: []driven.Attachment{{
				MimeType: baseMIMEType(input.MimeType),
				Data:     input.Content,
			}},
		},
	}

	done := logger.Timed("extract " + input.FileName)
	reply, err := e.llm.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens: maxTokens,
		JSON:      true,
	})
	done()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrExtractionFailed, input.FileName, err)
	}

	doc, err := Decode(reply)
	if err != nil {
		logger.Debug("unusable reply for %s: %q", input.FileName, reply)
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrExtractionFailed, input.FileName, err)
	}
	return doc, nil
}

// Decode parses an LLM reply into a document. Code fences around the JSON
// are stripped; unknown fields are ignored. Heir relation and ID number
// may come back as numbers.
func Decode(reply string) (*domain.Document, error) {
	body := stripFences(reply)
	if body == "" {
		return nil, fmt.Errorf("empty reply")
	}

	var r modelReply
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}
	if strings.TrimSpace(r.DocType) == "" {
		return nil, fmt.Errorf("reply has no docType")
	}

	rec := r.record()
	doc := rec.Document()
	// Identifiers are assigned by the caller, never by the model.
	doc.ID = ""
	return &doc, nil
}

// stripFences removes a surrounding ``` or ```json fence.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// loadPrompt loads the prompt from the store, falling back to the default if unavailable.
func (e *Extractor) loadPrompt() string {
	if e.promptStore == nil {
		return defaultPrompt
	}
	prompt, err := e.promptStore.Load(driven.PromptExtraction)
	if err != nil || strings.TrimSpace(prompt) == "" {
		return defaultPrompt
	}
	return prompt
}

func baseMIMEType(mt string) string {
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return strings.ToLower(strings.TrimSpace(mt))
}
