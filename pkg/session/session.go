// Package session keeps per browser-session state (resolved location, last results, search status).
// Entries expire after an idle TTL, which stands in for the end of a browser session.
package session

import (
	"context"

	"github.com/umputun/mealfinder/pkg/domain"
)

// Store keeps sessions by id. Get never fails for a missing session, it returns a fresh one.
type Store interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Update(ctx context.Context, id string, fn func(s *domain.Session) error) (*domain.Session, error)
}

// clone copies a session so callers can't mutate stored state through shared pointers
func clone(s *domain.Session) *domain.Session {
	res := *s
	if s.Location != nil {
		loc := *s.Location
		res.Location = &loc
	}
	if s.Results != nil {
		rs := *s.Results
		res.Results = &rs
	}
	return &res
}
