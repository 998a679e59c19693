// Package locate resolves the location of a browser session, once per session.
// The browser reports either a coordinate pair or a failure; anything other than a valid
// coordinate resolves to the configured fallback.
package locate

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lgr"
	"github.com/go-playground/validator/v10"

	"github.com/umputun/mealfinder/pkg/domain"
)

// Sessions is the part of the session store used by the resolver
type Sessions interface {
	Update(ctx context.Context, id string, fn func(s *domain.Session) error) (*domain.Session, error)
}

// Report is what the browser geolocation hook sent back.
// Point is nil when the capability is missing or the user denied it, Reason describes why.
type Report struct {
	Point  *domain.GeoPoint
	Reason string
}

// Resolver stores the first resolved location of each session
type Resolver struct {
	sessions Sessions
	fallback domain.Location
	validate *validator.Validate
}

// NewResolver makes a resolver with the given fallback location
func NewResolver(sessions Sessions, fallback domain.Location) *Resolver {
	fallback.Source = domain.LocationSourceFallback
	return &Resolver{sessions: sessions, fallback: fallback, validate: validator.New()}
}

// Fallback returns the location used when the browser can't report one
func (r *Resolver) Fallback() domain.Location {
	return r.fallback
}

// Resolve caches the reported location for the session, or the fallback if the report is a failure
// or out of range. An already resolved session keeps its location.
func (r *Resolver) Resolve(ctx context.Context, sessionID string, rep Report) (domain.Location, error) {
	loc := r.locationFor(rep)
	var resolved domain.Location
	_, err := r.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		if s.HasLocation() {
			lgr.Printf("[DEBUG] session %s already has location, report ignored", sessionID)
		}
		resolved = s.ResolveLocation(loc)
		return nil
	})
	if err != nil {
		return domain.Location{}, fmt.Errorf("resolve location: %w", err)
	}
	return resolved, nil
}

// locationFor turns a browser report into a location, falling back on failure
func (r *Resolver) locationFor(rep Report) domain.Location {
	if rep.Point == nil {
		lgr.Printf("[DEBUG] geolocation unavailable (%s), using fallback %s", rep.Reason, r.fallback.Name)
		return r.fallback
	}
	if err := r.validate.Struct(rep.Point); err != nil {
		lgr.Printf("[WARN] invalid reported coordinates %+v: %v, using fallback", *rep.Point, err)
		return r.fallback
	}
	return domain.Location{GeoPoint: *rep.Point, Source: domain.LocationSourceBrowser}
}
