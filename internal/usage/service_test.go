package usage

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestRecordFillsDefaults(t *testing.T) {
	svc := NewService()
	svc.Record(context.Background(), Record{
		Endpoint:   "recommendation",
		Outcome:    OutcomeOK,
		DurationMs: 100,
	})

	records, err := svc.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.ID == "" {
		t.Fatalf("expected generated ID")
	}
	if rec.CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt to be set")
	}
	if rec.APIKeyHash != "anonymous" {
		t.Fatalf("expected anonymous hash, got %q", rec.APIKeyHash)
	}
}

func TestListRecentNewestFirst(t *testing.T) {
	svc := NewService()
	for i := 0; i < 5; i++ {
		svc.Record(context.Background(), Record{ID: fmt.Sprintf("rec-%d", i), Endpoint: "recommendation", Outcome: OutcomeOK})
	}

	records, err := svc.ListRecent(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "rec-4" || records[1].ID != "rec-3" {
		t.Fatalf("expected newest first, got %s then %s", records[0].ID, records[1].ID)
	}
}

func TestListRecentClampsLimit(t *testing.T) {
	svc := NewService()
	svc.Record(context.Background(), Record{Endpoint: "recommendation", Outcome: OutcomeOK})

	for _, limit := range []int{0, -1, 10000} {
		records, err := svc.ListRecent(context.Background(), limit)
		if err != nil {
			t.Fatalf("ListRecent(%d): %v", limit, err)
		}
		if len(records) != 1 {
			t.Fatalf("ListRecent(%d): expected 1 record, got %d", limit, len(records))
		}
	}
}

type failingStore struct{}

func (failingStore) Insert(ctx context.Context, rec Record) error {
	return errors.New("db down")
}

func (failingStore) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	return nil, errors.New("db down")
}

func TestRecordSwallowsStoreFailure(t *testing.T) {
	svc := NewPostgresService(failingStore{})
	// Must not panic or propagate.
	svc.Record(context.Background(), Record{Endpoint: "recommendation", Outcome: OutcomeFailed})
}

func TestHashAPIKey(t *testing.T) {
	if HashAPIKey("") != "" {
		t.Fatalf("blank key must hash to empty string")
	}
	a := HashAPIKey("key-a")
	b := HashAPIKey("key-b")
	if a == "" || a == b {
		t.Fatalf("expected distinct non-empty hashes, got %q and %q", a, b)
	}
	if a == "key-a" {
		t.Fatalf("hash must not echo the key")
	}
	if HashAPIKey("  key-a  ") != a {
		t.Fatalf("hash must ignore surrounding whitespace")
	}
}

func TestMemoryStoreCapsRecords(t *testing.T) {
	store := newMemoryStore()
	for i := 0; i < memoryCap+50; i++ {
		if err := store.Insert(context.Background(), Record{ID: fmt.Sprintf("rec-%d", i)}); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	if len(store.records) != memoryCap {
		t.Fatalf("expected cap of %d, got %d", memoryCap, len(store.records))
	}
	if store.records[0].ID != "rec-50" {
		t.Fatalf("expected oldest records evicted, got %s", store.records[0].ID)
	}
}
