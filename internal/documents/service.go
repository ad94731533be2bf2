package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"docqa-backend/internal/extract"
	"docqa-backend/internal/shared/metrics"
	"docqa-backend/internal/shared/telemetry"
	"docqa-backend/internal/shared/util"
)

// TextExtractor turns uploaded bytes into plain text.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, format extract.Format) (string, error)
}

// Service contains business logic for documents.
type Service struct {
	Repo      Repo
	Extractor TextExtractor
	Now       func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo, extractor TextExtractor) *Service {
	return &Service{
		Repo:      repo,
		Extractor: extractor,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}

// Upload extracts the text of the file and replaces the session's document.
// The stored document is left untouched when any step fails.
func (s *Service) Upload(ctx context.Context, sessionID, fileName string, r io.Reader) (Document, error) {
	if fileName == "" {
		metrics.ObserveUpload("", metrics.OutcomeInvalid)
		return Document{}, ErrEmptyFileName
	}
	format, err := extract.FormatFromFileName(fileName)
	if err != nil {
		metrics.ObserveUpload("", metrics.OutcomeInvalid)
		return Document{}, ErrUnsupportedType
	}

	data, err := io.ReadAll(r)
	if err != nil {
		metrics.ObserveUpload(string(format), metrics.OutcomeFailed)
		return Document{}, fmt.Errorf("read upload: %w", err)
	}

	start := time.Now()
	text, err := s.Extractor.ExtractText(ctx, data, format)
	metrics.ObserveExtraction(string(format), time.Since(start))
	if err != nil {
		metrics.ObserveUpload(string(format), metrics.OutcomeFailed)
		telemetry.Error("document.extract.failed", map[string]any{
			"session_id": sessionID,
			"file_name":  util.SanitizeFileName(fileName),
			"format":     string(format),
			"size_bytes": len(data),
			"error":      err,
		})
		return Document{}, err
	}

	doc := Document{
		SessionID:  sessionID,
		Text:       text,
		FileName:   util.SanitizeFileName(fileName),
		Format:     format,
		SizeBytes:  int64(len(data)),
		Checksum:   util.HashText(text),
		UploadedAt: s.now(),
	}
	if err := s.Repo.Put(ctx, sessionID, doc); err != nil {
		metrics.ObserveUpload(string(format), metrics.OutcomeFailed)
		return Document{}, fmt.Errorf("store document: %w", err)
	}

	metrics.ObserveUpload(string(format), metrics.OutcomeSuccess)
	telemetry.Info("document.stored", map[string]any{
		"session_id": sessionID,
		"file_name":  doc.FileName,
		"format":     string(format),
		"size_bytes": doc.SizeBytes,
		"text_chars": len([]rune(text)),
		"checksum":   doc.Checksum,
	})
	return doc, nil
}

// Current returns the session's document. A document whose text is empty is
// reported as ErrNotFound, the same as no upload at all.
func (s *Service) Current(ctx context.Context, sessionID string) (Document, error) {
	doc, err := s.Repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("load document: %w", err)
	}
	if doc.Text == "" {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// CurrentText satisfies the reader used by the answers service.
func (s *Service) CurrentText(ctx context.Context, sessionID string) (string, error) {
	doc, err := s.Current(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
