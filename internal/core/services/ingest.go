package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/tarika/internal/core/domain"
	"github.com/custodia-labs/tarika/internal/core/ports/driven"
	"github.com/custodia-labs/tarika/internal/core/ports/driving"
	"github.com/custodia-labs/tarika/internal/core/succession"
	"github.com/custodia-labs/tarika/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// MaxFileSize is the largest file accepted for extraction.
// Providers reject larger inline attachments.
const MaxFileSize = 20 << 20

// IngestService extracts files into documents, one at a time.
type IngestService struct {
	extractor driven.Extractor
	docStore  driven.DocumentStore
	limiter   *rate.Limiter
	now       func() time.Time
}

// NewIngestService creates a new ingest service.
// requestsPerMinute throttles extraction calls; a non-positive value disables throttling.
func NewIngestService(extractor driven.Extractor, docStore driven.DocumentStore, requestsPerMinute int) *IngestService {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if requestsPerMinute > 0 {
		// Allow a full minute's worth up front so small batches never wait.
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute)
	}
	return &IngestService{
		extractor: extractor,
		docStore:  docStore,
		limiter:   limiter,
		now:       time.Now,
	}
}

// Ingest processes paths one at a time, in order.
func (s *IngestService) Ingest(
	ctx context.Context,
	paths []string,
	progress func(driving.IngestProgress),
) (*driving.IngestReport, error) {
	if s.extractor == nil || s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}
	if progress == nil {
		progress = func(driving.IngestProgress) {}
	}

	logger.Section("Ingest")
	logger.Debug("Files: %d, extractor: %s", len(paths), s.extractor.Name())

	report := &driving.IngestReport{}
	total := len(paths)

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		progress(driving.IngestProgress{Current: i + 1, Total: total, Path: path})

		doc, err := s.ingestFile(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			logger.Warn("Skipping %s: %v", path, err)
			report.Failures = append(report.Failures, driving.IngestFailure{Path: path, Err: err})
			progress(driving.IngestProgress{Current: i + 1, Total: total, Path: path, Done: true, Err: err})
			continue
		}

		report.Documents = append(report.Documents, *doc)
		progress(driving.IngestProgress{Current: i + 1, Total: total, Path: path, Done: true, Document: doc})
	}

	logger.Info("Ingested %d of %d files", report.Succeeded(), total)
	return report, nil
}

// ingestFile reads, extracts and stores one file.
func (s *IngestService) ingestFile(ctx context.Context, path string) (*domain.Document, error) {
	defer logger.Timed("ingest " + path)()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrUnsupportedFile, path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrUnsupportedFile, path)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %s is larger than %d MB", domain.ErrUnsupportedFile, path, MaxFileSize>>20)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	input := driven.ExtractionInput{
		FileName: filepath.Base(path),
		MimeType: DetectMimeType(path, content),
		Content:  content,
	}
	logger.Debug("Detected %s as %s", input.FileName, input.MimeType)

	if !s.extractor.Supports(input) {
		return nil, fmt.Errorf("%w: %s (%s)", domain.ErrUnsupportedFile, input.FileName, input.MimeType)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
	}

	doc, err := s.extractor.Extract(ctx, input)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: no record returned for %s", domain.ErrExtractionFailed, input.FileName)
	}

	doc.ID = uuid.New().String()
	doc.FileName = input.FileName
	doc.MimeType = input.MimeType
	doc.CreatedAt = s.now()

	// Stored anyway: the analysis reports it and the user can remove it.
	var malformed *domain.MalformedDocumentError
	if err := succession.Validate(*doc); errors.As(err, &malformed) {
		logger.Warn("%s was extracted with problems: %s", input.FileName, malformed.Reason)
	}

	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	return doc, nil
}

// DetectMimeType returns the content type of a file, preferring its extension
// and falling back to content sniffing.
func DetectMimeType(path string, content []byte) string {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		if mediaType, _, err := mime.ParseMediaType(byExt); err == nil {
			return mediaType
		}
	}
	sniffed := http.DetectContentType(content)
	if mediaType, _, err := mime.ParseMediaType(sniffed); err == nil {
		return mediaType
	}
	return sniffed
}
