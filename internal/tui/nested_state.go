package tui

import (
	"artes-cli/internal/model"
)

// nestedState tracks the single expanded activity and its lazily loaded
// subtask/file/invitation collections. A map key that is absent means the
// collections were never fetched; a present key with an empty slice means
// they loaded and the activity simply has none. Re-expanding a cached
// activity must not refetch.
type nestedState struct {
	expanded    int // 0 = nothing expanded
	subtasks    map[int][]model.Subtask
	files       map[int][]model.ActivityFile
	invitations map[int][]model.Invitation
}

func newNestedState() nestedState {
	return nestedState{
		subtasks:    map[int][]model.Subtask{},
		files:       map[int][]model.ActivityFile{},
		invitations: map[int][]model.Invitation{},
	}
}

func (s *nestedState) loaded(id int) bool {
	_, ok := s.subtasks[id]
	return ok
}

// toggle expands id (collapsing any other expanded activity) or collapses it
// when already expanded. fetch is true when the collections for id were
// never loaded.
func (s *nestedState) toggle(id int) (fetch bool) {
	if s.expanded == id {
		s.expanded = 0
		return false
	}
	s.expanded = id
	return !s.loaded(id)
}

func (s *nestedState) collapse() { s.expanded = 0 }

// store installs fetched collections, normalizing nil slices so the key is
// always present afterwards.
func (s *nestedState) store(msg nestedMsg) {
	subs := msg.subtasks
	if subs == nil {
		subs = []model.Subtask{}
	}
	files := msg.files
	if files == nil {
		files = []model.ActivityFile{}
	}
	invs := msg.invitations
	if invs == nil {
		invs = []model.Invitation{}
	}
	s.subtasks[msg.activityID] = subs
	s.files[msg.activityID] = files
	s.invitations[msg.activityID] = invs
}

// invalidate drops the cached collections for id so the next expansion (or
// the post-mutation refetch) reloads them from the server.
func (s *nestedState) invalidate(id int) {
	delete(s.subtasks, id)
	delete(s.files, id)
	delete(s.invitations, id)
}
