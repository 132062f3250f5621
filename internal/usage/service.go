package usage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"recommendation-backend/internal/shared/telemetry"
	"recommendation-backend/internal/shared/util"
)

type store interface {
	Insert(ctx context.Context, rec Record) error
	ListRecent(ctx context.Context, limit int) ([]Record, error)
}

// Service records per-call usage via an underlying store.
type Service struct {
	store store
}

// NewService constructs a Service with an in-memory store.
func NewService() *Service {
	return &Service{store: newMemoryStore()}
}

// NewPostgresService constructs a Service backed by Postgres.
func NewPostgresService(pgStore store) *Service {
	return &Service{store: pgStore}
}

// Record persists one call's accounting entry. Failures are logged, never
// propagated: accounting must not fail the request.
func (s *Service) Record(ctx context.Context, rec Record) {
	if s == nil || s.store == nil {
		return
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	rec.APIKeyHash = normalizeKeyHash(rec.APIKeyHash)

	if err := s.store.Insert(ctx, rec); err != nil {
		telemetry.Error("usage.record", map[string]any{
			"endpoint": rec.Endpoint,
			"outcome":  rec.Outcome,
			"error":    util.SanitizeError(err),
		})
	}
}

// ListRecent returns up to limit most recent records, newest first.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	if s == nil || s.store == nil {
		return nil, errors.New("usage store not configured")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.store.ListRecent(ctx, limit)
}

// HashAPIKey derives the stored identifier for a caller key.
func HashAPIKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	return util.HashKey(key)
}

func normalizeKeyHash(hash string) string {
	if strings.TrimSpace(hash) == "" {
		return "anonymous"
	}
	return hash
}
