package scheduler

import (
	"context"
	"testing"
)

func TestAddRejectsBadSpec(t *testing.T) {
	s := New(nil)
	err := s.Add("bad", "every minute or so", func(ctx context.Context) error { return nil })
	if err == nil {
		t.Fatal("expected error for malformed spec")
	}
}

func TestAddAcceptsEverySpec(t *testing.T) {
	s := New(nil)
	if err := s.Add("ok", "@every 1m", func(ctx context.Context) error { return nil }); err != nil {
		t.Fatalf("Add: %v", err)
	}
}
