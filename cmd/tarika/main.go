// Command tarika reviews heir authorization across inheritance disclosures
// and powers of attorney.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/tarika/internal/adapters/driven/ai"
	"github.com/custodia-labs/tarika/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tarika/internal/adapters/driven/extraction"
	llmextract "github.com/custodia-labs/tarika/internal/adapters/driven/extraction/llm"
	"github.com/custodia-labs/tarika/internal/adapters/driven/extraction/records"
	"github.com/custodia-labs/tarika/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tarika/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/tarika/internal/adapters/driving/cli"
	"github.com/custodia-labs/tarika/internal/core/domain"
	"github.com/custodia-labs/tarika/internal/core/ports/driven"
	"github.com/custodia-labs/tarika/internal/core/services"
	"github.com/custodia-labs/tarika/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// closers are released after the command finishes.
var closers []func()

func main() {
	cli.SetVersion(version)
	cli.SetInitializer(initialise)

	err := cli.Execute()
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
	if err != nil {
		os.Exit(1)
	}
}

// initialise builds the adapters and services once flags are parsed.
func initialise(opts cli.Options) error {
	defer logger.Timed("initialise")()

	var configStore driven.ConfigStore
	fileConfig, err := file.NewConfigStore("")
	if err != nil {
		logger.Warn("config file unavailable, settings will not persist: %v", err)
		configStore = memory.NewConfigStore()
	} else {
		configStore = fileConfig
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("loading settings: %v; using defaults", err)
		defaults := domain.DefaultAppSettings()
		settings = &defaults
	}

	llmInit := ai.Initialise(&settings.LLM)
	for _, w := range llmInit.Warnings {
		logger.Warn("%s", w)
	}
	if llmInit.FellBack {
		logger.Info("LLM extraction disabled; only structured records can be ingested")
	}
	closers = append(closers, llmInit.Close)

	var prompts driven.PromptStore
	if store, err := file.NewPromptStore(""); err != nil {
		logger.Warn("prompt directory unavailable, using built-in prompts: %v", err)
	} else {
		prompts = store
	}
	extractor := newExtractor(llmInit.LLMService, prompts)

	docStore, err := openDocumentStore(opts)
	if err != nil {
		return err
	}

	cli.SetServices(cli.Services{
		Document: services.NewDocumentService(docStore),
		Ingest:   services.NewIngestService(extractor, docStore, settings.Extraction.RequestsPerMinute),
		Analysis: services.NewAnalysisService(docStore, settingsService),
		Settings: settingsService,
	})
	return nil
}

// newExtractor routes structured records first and everything else to the LLM.
// llm and prompts may be nil.
func newExtractor(llm driven.LLMService, prompts driven.PromptStore) *extraction.Router {
	llmExtractor := llmextract.New(llm)
	if prompts != nil {
		llmExtractor.SetPromptStore(prompts)
	}
	router := extraction.NewRouter(records.New(), llmExtractor)
	logger.Debug("extractors: %s", strings.Join(router.Names(), ", "))
	return router
}

// openDocumentStore opens the SQLite database, or an in-memory store with --memory.
func openDocumentStore(opts cli.Options) (driven.DocumentStore, error) {
	if opts.Memory {
		logger.Debug("using in-memory document store")
		return memory.NewDocumentStore(), nil
	}

	store, err := sqlite.NewStore(opts.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening document database: %w", err)
	}
	logger.Debug("document database: %s", store.Path())
	closers = append(closers, func() {
		if err := store.Close(); err != nil {
			logger.Error("closing document database: %v", err)
		}
	})
	return store.DocumentStore(), nil
}
