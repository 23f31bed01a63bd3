package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/sigimsae/internal/db"
)

func mustGet(t *testing.T, s *Store, key string) string {
	t.Helper()
	v, err := s.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get(%q): %v", key, err)
	}
	return string(v)
}

func TestStore_SetGetDel(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	if err := s.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := mustGet(t, s, "k"); got != "v1" {
		t.Errorf("Get = %q, want v1", got)
	}

	if err := s.Set(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := mustGet(t, s, "k"); got != "v2" {
		t.Errorf("Get = %q, want v2", got)
	}

	if err := s.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound after Del, got %v", err)
	}

	if err := s.Del(ctx, "missing"); err != nil {
		t.Errorf("Del of a missing key: %v", err)
	}
}

func TestStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	in := []byte("abc")
	if err := s.Set(ctx, "k", in); err != nil {
		t.Fatalf("Set: %v", err)
	}
	in[0] = 'x'

	out, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(out) != "abc" {
		t.Errorf("stored value aliased the input: %q", out)
	}

	out[0] = 'y'
	if got := mustGet(t, s, "k"); got != "abc" {
		t.Errorf("Get exposed internal bytes: %q", got)
	}
}

func TestStore_Closed(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	if err := s.WaitForReady(ctx, time.Second); err != nil {
		t.Fatalf("WaitForReady: %v", err)
	}

	s.Close()

	if err := s.Ping(ctx); !errors.Is(err, db.ErrClosed) {
		t.Errorf("expected ErrClosed from Ping, got %v", err)
	}

	var dbErr *db.Error
	if err := s.Set(ctx, "k", nil); !errors.As(err, &dbErr) {
		t.Fatalf("expected *db.Error, got %T: %v", err, err)
	}
	if dbErr.Op != db.OpSet {
		t.Errorf("Op = %q, want %q", dbErr.Op, db.OpSet)
	}
}
