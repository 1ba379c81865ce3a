package badgerdb

import (
	"context"
	"errors"
	"testing"

	"github.com/ewilliams-labs/vibestudio/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(InMemory)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_GetMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Get(context.Background(), "vibe_studio_session"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_PutGetDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "vibe_studio_data_1", []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, "vibe_studio_data_1", []byte(`[{"id":"b1"}]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := s.Get(ctx, "vibe_studio_data_1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[{"id":"b1"}]` {
		t.Fatalf("value = %q", got)
	}

	for i := 0; i < 2; i++ {
		if err := s.Delete(ctx, "vibe_studio_data_1"); err != nil {
			t.Fatalf("delete #%d: %v", i+1, err)
		}
	}
	if _, err := s.Get(ctx, "vibe_studio_data_1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStore_CancelledContext(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Put(ctx, "k", []byte("v")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
