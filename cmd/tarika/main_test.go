package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tarika/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tarika/internal/adapters/driving/cli"
	"github.com/custodia-labs/tarika/internal/logger"
)

func resetClosers(t *testing.T) {
	t.Helper()
	closers = nil
	t.Cleanup(func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		closers = nil
	})
}

func TestOpenDocumentStore_Memory(t *testing.T) {
	resetClosers(t)

	store, err := openDocumentStore(cli.Options{Memory: true})
	require.NoError(t, err)

	assert.IsType(t, &memory.DocumentStore{}, store)
	assert.Empty(t, closers)
}

func TestOpenDocumentStore_SQLite(t *testing.T) {
	resetClosers(t)
	dir := t.TempDir()

	store, err := openDocumentStore(cli.Options{DataDir: dir})
	require.NoError(t, err)

	assert.NotNil(t, store)
	assert.Len(t, closers, 1)
	assert.FileExists(t, filepath.Join(dir, "documents.db"))
}

func TestNewExtractor_RecordsBeforeLLM(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetVerbose(true)
	t.Cleanup(func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})

	router := newExtractor(nil, nil)

	assert.Equal(t, []string{"records", "llm"}, router.Names())
	assert.Contains(t, buf.String(), "extractors: records, llm")
}
