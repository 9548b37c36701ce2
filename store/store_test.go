package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db", "brood.sqlite"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestMatchLifecycle(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	id, err := s.StartMatch(ctx, Match{Player: "brood", Race: "Zerg", EnemyRace: "Terran", Map: "Acropolis"})
	if err != nil {
		t.Fatal(err)
	}
	if len(id) != 36 {
		t.Errorf("id %q is not a uuid", id)
	}

	for _, e := range []Event{
		{Loop: 3000, Kind: "proxy_detected", Detail: "proxy_detected"},
		{Loop: 2240, Kind: "first_contact", Detail: "enemies visible"},
	} {
		if err := s.RecordEvent(ctx, id, e); err != nil {
			t.Fatal(err)
		}
	}

	m, err := s.Match(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if !m.EndedAt.IsZero() || m.Result != "" {
		t.Errorf("running match looks ended: %+v", m)
	}

	if err := s.EndMatch(ctx, id, 20160, "victory"); err != nil {
		t.Fatal(err)
	}
	m, err = s.Match(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if m.Result != "victory" || m.FinalLoop != 20160 || m.EndedAt.IsZero() || m.EnemyRace != "Terran" {
		t.Errorf("ended match = %+v", m)
	}

	events, err := s.Events(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 || events[0].Kind != "first_contact" || events[1].Loop != 3000 {
		t.Errorf("events = %+v, want loop order", events)
	}
}

func TestUnknownMatch(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	if _, err := s.Match(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Match err = %v", err)
	}
	if err := s.EndMatch(ctx, "nope", 1, "defeat"); !errors.Is(err, ErrNotFound) {
		t.Errorf("EndMatch err = %v", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(" "); err == nil {
		t.Error("blank path should fail")
	}
}
