package sources

import (
	"context"
	"reflect"
	"testing"

	"horse.fit/paddock/internal/racecard"
)

type fakeAdapter struct {
	id   string
	docs []racecard.RawRaceDocument
	err  error
}

func (f *fakeAdapter) SourceID() string { return f.id }

func (f *fakeAdapter) Fetch(ctx context.Context, cfg Config) ([]racecard.RawRaceDocument, error) {
	return f.docs, f.err
}

func TestRegistryRegisterAndSelect(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	if err := registry.Register(&fakeAdapter{id: "Site-A"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := registry.Register(&fakeAdapter{id: "site-b"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if got := registry.AdapterIDs(); !reflect.DeepEqual(got, []string{"site-a", "site-b"}) {
		t.Fatalf("unexpected adapter IDs: %v", got)
	}

	// IDs resolve case-insensitively.
	if _, err := registry.Adapter(" SITE-A "); err != nil {
		t.Fatalf("case-insensitive lookup failed: %v", err)
	}
	if _, err := registry.Adapter("missing"); err == nil {
		t.Fatalf("expected error for unregistered adapter")
	}

	all, err := registry.Select(nil)
	if err != nil {
		t.Fatalf("select all failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 adapters, got %d", len(all))
	}

	one, err := registry.Select([]string{"site-b"})
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if len(one) != 1 || one[0].SourceID() != "site-b" {
		t.Fatalf("unexpected selection: %v", one)
	}

	if _, err := registry.Select([]string{"site-b", "missing"}); err == nil {
		t.Fatalf("expected error when selection names an unknown adapter")
	}
}

func TestRegistryRejectsInvalidAdapters(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected error for nil adapter")
	}
	if err := registry.Register(&fakeAdapter{id: "   "}); err == nil {
		t.Fatalf("expected error for blank adapter ID")
	}
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	registry := NewDefaultRegistry()
	if got := registry.AdapterIDs(); !reflect.DeepEqual(got, []string{"docfile", "racingandsports"}) {
		t.Fatalf("unexpected default adapters: %v", got)
	}
}
