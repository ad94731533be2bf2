package answers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"docqa-backend/internal/documents"
	"docqa-backend/internal/qa"
	"docqa-backend/internal/shared/metrics"
	"docqa-backend/internal/shared/telemetry"
)

// DocumentReader returns the text currently stored for a session.
type DocumentReader interface {
	CurrentText(ctx context.Context, sessionID string) (string, error)
}

// Service answers questions against the session's stored document.
type Service struct {
	Docs DocumentReader
	QA   qa.Client
}

// NewService constructs a Service.
func NewService(docs DocumentReader, client qa.Client) *Service {
	return &Service{Docs: docs, QA: client}
}

// Ask runs the QA model once with the stored text as context.
func (s *Service) Ask(ctx context.Context, sessionID, query string) (qa.Answer, error) {
	if query == "" {
		metrics.ObserveAnswer(metrics.OutcomeInvalid)
		return qa.Answer{}, ErrMissingQuery
	}

	text, err := s.Docs.CurrentText(ctx, sessionID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			metrics.ObserveAnswer(metrics.OutcomeNoDocument)
			return qa.Answer{}, ErrNoDocument
		}
		metrics.ObserveAnswer(metrics.OutcomeFailed)
		return qa.Answer{}, fmt.Errorf("load document: %w", err)
	}

	start := time.Now()
	answer, err := s.QA.Answer(ctx, qa.Input{Question: query, Context: text})
	elapsed := time.Since(start)
	metrics.ObserveModel(elapsed)
	if err != nil {
		metrics.ObserveAnswer(metrics.OutcomeFailed)
		telemetry.Error("answer.model.failed", map[string]any{
			"session_id":  sessionID,
			"duration_ms": elapsed.Milliseconds(),
			"error":       err,
		})
		return qa.Answer{}, fmt.Errorf("%w: %v", ErrModel, err)
	}

	metrics.ObserveAnswer(metrics.OutcomeSuccess)
	telemetry.Debug("answer.complete", map[string]any{
		"session_id":  sessionID,
		"duration_ms": elapsed.Milliseconds(),
		"score":       answer.Score,
	})
	return answer, nil
}
