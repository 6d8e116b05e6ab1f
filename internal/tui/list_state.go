package tui

import (
	"artes-cli/internal/model"
)

const activitiesPerPage = 10

// listState holds the paginated activity list independently of any other
// screen state. Every change that requires a server round trip bumps seq;
// responses carrying an older seq are dropped in apply, so a slow poll can
// never overwrite the result of a newer page flip or filter change.
type listState struct {
	items      []model.Activity
	total      int
	page       int
	totalPages int
	filter     model.Status // empty means all statuses
	seq        int
	loading    bool
}

func newListState() listState {
	return listState{page: 1, totalPages: 1}
}

// bump invalidates every in-flight response and returns the seq the next
// request must carry.
func (s *listState) bump() int {
	s.seq++
	s.loading = true
	return s.seq
}

// setFilter changes the status filter and resets to the first page. Returns
// false when the filter is unchanged (no refetch needed).
func (s *listState) setFilter(f model.Status) bool {
	if s.filter == f {
		return false
	}
	s.filter = f
	s.page = 1
	return true
}

// cycleFilter advances all -> En Curso -> Completada -> Cancelada -> all.
func (s *listState) cycleFilter() {
	order := model.AllStatuses()
	next := model.Status("")
	for i, st := range order {
		if s.filter == st {
			if i+1 < len(order) {
				next = order[i+1]
			}
			break
		}
		if s.filter == "" {
			next = order[0]
			break
		}
	}
	s.setFilter(next)
}

func (s *listState) nextPage() bool {
	if s.page >= s.totalPages {
		return false
	}
	s.page++
	return true
}

func (s *listState) prevPage() bool {
	if s.page <= 1 {
		return false
	}
	s.page--
	return true
}

// apply installs a fetched page. Stale responses (seq mismatch) are
// discarded. When the server reports fewer pages than the requested page
// number the page is clamped and refetch is true: the caller should issue
// a new request for the clamped page.
func (s *listState) apply(msg activitiesMsg) (applied, refetch bool) {
	if msg.seq != s.seq {
		return false, false
	}
	s.loading = false
	if msg.err != "" {
		return false, false
	}
	s.items = msg.page.Items
	s.total = msg.page.Total
	s.totalPages = msg.page.TotalPages()
	if s.page > s.totalPages {
		s.page = s.totalPages
		return true, true
	}
	if s.page < 1 {
		s.page = 1
		return true, true
	}
	return true, false
}
