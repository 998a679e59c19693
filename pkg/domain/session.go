package domain

import "time"

// SearchStatus is the state of the results area for a session
type SearchStatus string

// search statuses
const (
	StatusIdle    SearchStatus = "idle"
	StatusLoading SearchStatus = "loading"
	StatusReady   SearchStatus = "ready"
	StatusError   SearchStatus = "error"
)

// Session is the per browser-session state: resolved location and the last result set.
// There is never more than one of each and no history is kept.
type Session struct {
	ID        string       `json:"id"`
	Location  *Location    `json:"location,omitempty"`
	Results   *ResultSet   `json:"results,omitempty"`
	Status    SearchStatus `json:"status"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewSession makes an empty idle session
func NewSession(id string) *Session {
	return &Session{ID: id, Status: StatusIdle, UpdatedAt: time.Now()}
}

// HasLocation reports whether the location was resolved
func (s *Session) HasLocation() bool {
	return s.Location != nil
}

// ResolveLocation stores the location unless one is already set, returns the effective location
func (s *Session) ResolveLocation(loc Location) Location {
	if s.Location == nil {
		s.Location = &loc
		s.UpdatedAt = time.Now()
	}
	return *s.Location
}

// MarkLoading switches the results area to the loading indicator
func (s *Session) MarkLoading() {
	s.Status = StatusLoading
	s.UpdatedAt = time.Now()
}

// StoreResults caches meals and marks the session ready, an empty list is a valid result
func (s *Session) StoreResults(meals []Meal) {
	if meals == nil {
		meals = []Meal{}
	}
	s.Results = &ResultSet{Meals: meals, FetchedAt: time.Now()}
	s.Status = StatusReady
	s.UpdatedAt = time.Now()
}

// MarkFailed switches to the error state, previously cached results are kept for restoration
func (s *Session) MarkFailed() {
	s.Status = StatusError
	s.UpdatedAt = time.Now()
}

// ResultsView is what the results area renders
type ResultsView struct {
	State SearchStatus
	Meals []Meal
}

// View returns the current results area state
func (s *Session) View() ResultsView {
	switch s.Status {
	case StatusLoading, StatusError:
		return ResultsView{State: s.Status}
	}
	if s.Results != nil {
		return ResultsView{State: StatusReady, Meals: s.Results.Meals}
	}
	return ResultsView{State: StatusIdle}
}

// RestoredView is the state rendered on a page load: cached results win over a stale error
func (s *Session) RestoredView() ResultsView {
	if s.Status == StatusLoading {
		return ResultsView{State: StatusLoading}
	}
	if s.Results != nil {
		return ResultsView{State: StatusReady, Meals: s.Results.Meals}
	}
	return ResultsView{State: StatusIdle}
}
