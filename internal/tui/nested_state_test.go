package tui

import (
	"testing"

	"artes-cli/internal/model"
)

func TestNestedState_ExclusiveExpansion(t *testing.T) {
	t.Parallel()

	s := newNestedState()
	if fetch := s.toggle(1); !fetch {
		t.Fatal("first expansion must fetch")
	}
	if s.expanded != 1 {
		t.Fatalf("expected 1 expanded; got %d", s.expanded)
	}

	// Expanding another activity collapses the first.
	if fetch := s.toggle(2); !fetch {
		t.Fatal("expanding an unseen activity must fetch")
	}
	if s.expanded != 2 {
		t.Fatalf("expected 2 expanded; got %d", s.expanded)
	}

	// Toggling the expanded one collapses without fetching.
	if fetch := s.toggle(2); fetch {
		t.Fatal("collapse must not fetch")
	}
	if s.expanded != 0 {
		t.Fatalf("expected nothing expanded; got %d", s.expanded)
	}
}

func TestNestedState_ReexpandUsesCache(t *testing.T) {
	t.Parallel()

	s := newNestedState()
	s.toggle(5)
	s.store(nestedMsg{activityID: 5, subtasks: []model.Subtask{{ID: 1, Title: "x"}}})

	s.toggle(5) // collapse
	if fetch := s.toggle(5); fetch {
		t.Fatal("re-expanding a cached activity must not refetch")
	}
	if got := s.subtasks[5]; len(got) != 1 || got[0].Title != "x" {
		t.Fatalf("cached subtasks lost: %+v", got)
	}
}

func TestNestedState_LoadedEmptyIsNotNeverFetched(t *testing.T) {
	t.Parallel()

	s := newNestedState()
	if s.loaded(9) {
		t.Fatal("unseen activity must not be loaded")
	}

	// A load that returned no collections still counts as loaded.
	s.store(nestedMsg{activityID: 9})
	if !s.loaded(9) {
		t.Fatal("empty load must count as loaded")
	}
	if s.subtasks[9] == nil || s.files[9] == nil || s.invitations[9] == nil {
		t.Fatal("store must normalize nil collections to empty slices")
	}
	if fetch := s.toggle(9); fetch {
		t.Fatal("expanding a loaded-empty activity must not refetch")
	}
}

func TestNestedState_InvalidateForcesRefetch(t *testing.T) {
	t.Parallel()

	s := newNestedState()
	s.toggle(3)
	s.store(nestedMsg{activityID: 3, files: []model.ActivityFile{{ID: 1, Filename: "a.pdf"}}})

	s.invalidate(3)
	if s.loaded(3) {
		t.Fatal("invalidate must drop the cache")
	}
	s.toggle(3) // collapse
	if fetch := s.toggle(3); !fetch {
		t.Fatal("expanding after invalidate must refetch")
	}
}
