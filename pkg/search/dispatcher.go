// Package search sends meal searches to the remote endpoint. The Dispatcher debounces user
// triggers per session, builds the payload from preferences and location, and stores the
// outcome in the session for the results area to render.
package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/mealfinder/pkg/domain"
)

// Searcher performs the remote search call
type Searcher interface {
	Search(ctx context.Context, req domain.SearchRequest) ([]domain.Meal, error)
}

// PreferenceProvider returns the current preferences of a client
type PreferenceProvider interface {
	GetPreferences(ctx context.Context, clientID string) (domain.Preferences, error)
}

// Sessions is the part of the session store used by the dispatcher
type Sessions interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Update(ctx context.Context, id string, fn func(s *domain.Session) error) (*domain.Session, error)
}

// ErrLocationUnresolved is returned by Trigger when the session has no location yet
var ErrLocationUnresolved = errors.New("location not resolved")

// ErrStopped is returned by Trigger after the dispatcher was shut down
var ErrStopped = errors.New("dispatcher is shut down")

// errStale aborts storing a response superseded by a later trigger
var errStale = errors.New("stale search response")

// DispatcherConfig holds dependencies and settings of the dispatcher
type DispatcherConfig struct {
	Searcher    Searcher
	Preferences PreferenceProvider
	Sessions    Sessions
	Debounce    time.Duration
	Timeout     time.Duration
}

// Dispatcher fires one search per settled burst of triggers for a session.
// Every accepted trigger gets a sequence number and a response is stored only if no later trigger
// exists for its session, pending in the debounce or already in flight.
type Dispatcher struct {
	searcher  Searcher
	prefs     PreferenceProvider
	sessions  Sessions
	debouncer *Debouncer
	timeout   time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	lastSeq uint64
	latest  map[string]uint64 // session id -> seq of its latest unfinished trigger
}

// NewDispatcher creates a dispatcher, call Shutdown (or Run) to release it
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		searcher:  cfg.Searcher,
		prefs:     cfg.Preferences,
		sessions:  cfg.Sessions,
		debouncer: NewDebouncer(cfg.Debounce),
		timeout:   cfg.Timeout,
		ctx:       ctx,
		cancel:    cancel,
		latest:    make(map[string]uint64),
	}
}

// Trigger schedules a search for the session. The results area switches to loading right away,
// the request itself is sent once triggers for the session settle. A session without a resolved
// location is left untouched and ErrLocationUnresolved is returned.
func (d *Dispatcher) Trigger(ctx context.Context, sessionID, clientID string) error {
	sess, err := d.sessions.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if !sess.HasLocation() {
		return ErrLocationUnresolved
	}

	seq, ok := d.next(sessionID)
	if !ok {
		return ErrStopped
	}

	if _, err := d.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		s.MarkLoading()
		return nil
	}); err != nil {
		return fmt.Errorf("mark loading: %w", err)
	}

	if !d.debouncer.Trigger(sessionID, func() { d.fire(sessionID, clientID, seq) }) {
		// shut down after the sequence was taken, don't leave the page polling
		d.markFailed([]string{sessionID})
		return ErrStopped
	}
	return nil
}

// Run blocks until the context is canceled and shuts the dispatcher down
func (d *Dispatcher) Run(ctx context.Context) error {
	<-ctx.Done()
	d.Shutdown()
	return nil
}

// Shutdown cancels waiting triggers and in-flight searches and waits for them to finish.
// Sessions whose trigger never fired are switched to the error state.
func (d *Dispatcher) Shutdown() {
	d.mu.Lock()
	d.cancel()
	d.mu.Unlock()
	d.markFailed(d.debouncer.Stop())
	d.wg.Wait()
}

// fire performs the search for the session and stores the outcome if no later trigger exists
func (d *Dispatcher) fire(sessionID, clientID string, seq uint64) {
	if !d.start() {
		return
	}
	defer d.wg.Done()
	ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
	defer cancel()

	meals, err := d.search(ctx, sessionID, clientID)
	if err != nil {
		lgr.Printf("[WARN] search for session %s failed: %v", sessionID, err)
	}

	_, uerr := d.sessions.Update(context.Background(), sessionID, func(s *domain.Session) error {
		if !d.isLatest(sessionID, seq) {
			return errStale
		}
		if err != nil {
			s.MarkFailed()
			return nil
		}
		s.StoreResults(meals)
		return nil
	})
	if errors.Is(uerr, errStale) {
		lgr.Printf("[DEBUG] dropping stale search response for session %s, seq %d", sessionID, seq)
		return
	}
	d.forget(sessionID, seq)
	if uerr != nil {
		lgr.Printf("[WARN] failed to store search outcome for session %s: %v", sessionID, uerr)
		return
	}
	if err == nil {
		lgr.Printf("[DEBUG] stored %d meals for session %s", len(meals), sessionID)
	}
}

// search builds the request from the session location and the client preferences and sends it
func (d *Dispatcher) search(ctx context.Context, sessionID, clientID string) ([]domain.Meal, error) {
	sess, err := d.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if !sess.HasLocation() {
		return nil, ErrLocationUnresolved
	}

	prefs, err := d.prefs.GetPreferences(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}

	req := domain.NewSearchRequest(*sess.Location, prefs)
	lgr.Printf("[DEBUG] searching meals for session %s, goal %s, radius %.1f", sessionID, req.Goal, req.Radius)
	meals, err := d.searcher.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search meals: %w", err)
	}
	return meals, nil
}

// markFailed switches sessions left loading by canceled triggers to the error state
func (d *Dispatcher) markFailed(ids []string) {
	if len(ids) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, id := range ids {
		if _, err := d.sessions.Update(ctx, id, func(s *domain.Session) error {
			s.MarkFailed()
			return nil
		}); err != nil {
			lgr.Printf("[WARN] failed to reset session %s: %v", id, err)
		}
	}
}

// next takes a sequence number for a new trigger of the session, false after shutdown
func (d *Dispatcher) next(sessionID string) (uint64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ctx.Err() != nil {
		return 0, false
	}
	d.lastSeq++
	d.latest[sessionID] = d.lastSeq
	return d.lastSeq, true
}

// start registers an in-flight search, false after shutdown
func (d *Dispatcher) start() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ctx.Err() != nil {
		return false
	}
	d.wg.Add(1)
	return true
}

func (d *Dispatcher) isLatest(sessionID string, seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.latest[sessionID] == seq
}

// forget drops the session entry once its latest search is done.
// Sequence numbers are dispatcher-wide, so a dropped entry never matches an older response.
func (d *Dispatcher) forget(sessionID string, seq uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.latest[sessionID] == seq {
		delete(d.latest, sessionID)
	}
}
