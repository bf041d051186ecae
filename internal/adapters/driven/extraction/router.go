// Package extraction turns raw instrument files into Documents.
// Router picks the first registered extractor that supports a file; the
// records and llm subpackages provide the extractors.
package extraction

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/tarika/internal/core/domain"
	"github.com/custodia-labs/tarika/internal/core/ports/driven"
)

// Ensure Router implements the interface.
var _ driven.Extractor = (*Router)(nil)

// Router dispatches to the first extractor whose Supports returns true.
// Registration order is selection priority.
type Router struct {
	mu         sync.RWMutex
	extractors []driven.Extractor
}

// NewRouter creates a router over extractors.
func NewRouter(extractors ...driven.Extractor) *Router {
	r := &Router{}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// Register appends an extractor. Nil extractors are ignored.
func (r *Router) Register(e driven.Extractor) {
	if e == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors = append(r.extractors, e)
}

// Name identifies the router.
func (r *Router) Name() string {
	return "router"
}

// Names lists the registered extractors in priority order.
func (r *Router) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.extractors))
	for i, e := range r.extractors {
		names[i] = e.Name()
	}
	return names
}

// Supports reports whether any extractor accepts input.
func (r *Router) Supports(input driven.ExtractionInput) bool {
	return r.pick(input) != nil
}

// Extract runs the selected extractor.
func (r *Router) Extract(ctx context.Context, input driven.ExtractionInput) (*domain.Document, error) {
	e := r.pick(input)
	if e == nil {
		return nil, fmt.Errorf("%s (%s): %w", input.FileName, input.MimeType, domain.ErrUnsupportedFile)
	}
	return e.Extract(ctx, input)
}

func (r *Router) pick(input driven.ExtractionInput) driven.Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.extractors {
		if e.Supports(input) {
			return e
		}
	}
	return nil
}
