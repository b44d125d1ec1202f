package listing

// State is the mutable view state behind one list: the active criteria, sort
// key and window. Any change to criteria or sort sends the view back to page 1
// so a stale or out-of-range page is never shown.
//
// State is not safe for concurrent use; each view owns its own.
type State struct {
	criteria  Criteria
	sort      SortKey
	page      int
	size      int
	lastTotal int
}

// NewState returns a state positioned on page 1.
func NewState(sort SortKey, pageSize int) *State {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &State{sort: sort, page: 1, size: pageSize}
}

// StateFromQuery seeds a state from a parsed query.
func StateFromQuery(q Query) *State {
	s := NewState(q.Sort, q.PageSize)
	s.criteria = q.Criteria
	if q.Page > 1 {
		s.page = q.Page
	}
	return s
}

// Query returns the current pipeline inputs.
func (s *State) Query() Query {
	return Query{Criteria: s.criteria, Sort: s.sort, Page: s.page, PageSize: s.size}
}

// Criteria returns the active criteria.
func (s *State) Criteria() Criteria { return s.criteria }

// SortKey returns the active sort key.
func (s *State) SortKey() SortKey { return s.sort }

// Page returns the current 1-based page number.
func (s *State) Page() int { return s.page }

// PageSize returns the window size.
func (s *State) PageSize() int { return s.size }

// SetCriteria replaces the criteria, resetting to page 1 when they changed.
func (s *State) SetCriteria(c Criteria) {
	if s.criteria.Equal(c) {
		return
	}
	s.criteria = c
	s.page = 1
}

// SetSort switches the comparator, resetting to page 1 when it changed.
func (s *State) SetSort(k SortKey) {
	if s.sort == k {
		return
	}
	s.sort = k
	s.page = 1
}

// SetPage moves to page n; values below 1 clamp to 1. Pages past the end are
// allowed and render empty.
func (s *State) SetPage(n int) {
	s.page = max(n, 1)
}

// Next advances one page if the last applied result has one.
func (s *State) Next() {
	if s.page < TotalPages(s.lastTotal, s.size) {
		s.page++
	}
}

// Prev moves back one page, stopping at page 1.
func (s *State) Prev() {
	s.SetPage(s.page - 1)
}

// SetPageSize changes the window size, recomputes the total page count from
// the last applied total and clamps the current page into range.
func (s *State) SetPageSize(n int) {
	if n < 1 {
		n = DefaultPageSize
	}
	s.size = n
	s.page = max(min(s.page, TotalPages(s.lastTotal, n)), 1)
}

// Apply runs the pipeline over items with the current inputs and remembers
// the filtered total for later page-size changes.
func Apply[T Item](s *State, items []T, policy MissingPolicy) Page[T] {
	p := Run(items, s.Query(), policy)
	s.lastTotal = p.Total
	return p
}
