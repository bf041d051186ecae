package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errs := []error{
		ErrNotFound,
		ErrAlreadyExists,
		ErrInvalidInput,
		ErrNotImplemented,
		ErrMalformedDocument,
		ErrUnsupportedFile,
		ErrExtractionFailed,
		ErrLLMUnavailable,
		ErrRateLimited,
	}

	for i := range errs {
		for j := range errs {
			if i != j {
				assert.False(t, errors.Is(errs[i], errs[j]), "%v should not match %v", errs[i], errs[j])
			}
		}
	}
}

func TestMalformedDocumentError(t *testing.T) {
	err := &MalformedDocumentError{DocumentID: "doc-1", Reason: "missing agent name"}

	assert.Equal(t, "malformed document doc-1: missing agent name", err.Error())
	assert.ErrorIs(t, err, ErrMalformedDocument)

	err.FileName = "poa.pdf"
	assert.Equal(t, "malformed document doc-1 (poa.pdf): missing agent name", err.Error())
}

func TestMalformedDocumentError_As(t *testing.T) {
	wrapped := fmt.Errorf("analysis: %w", &MalformedDocumentError{DocumentID: "doc-2", Reason: "x"})

	var target *MalformedDocumentError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "doc-2", target.DocumentID)
	assert.ErrorIs(t, wrapped, ErrMalformedDocument)
}
