package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/mealfinder/pkg/domain"
	"github.com/umputun/mealfinder/pkg/locate"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/preferences.go -pkg mocks -skip-ensure -fmt goimports . PreferenceStore
//go:generate moq -out mocks/sessions.go -pkg mocks -skip-ensure -fmt goimports . SessionStore
//go:generate moq -out mocks/dispatcher.go -pkg mocks -skip-ensure -fmt goimports . SearchDispatcher
//go:generate moq -out mocks/locator.go -pkg mocks -skip-ensure -fmt goimports . LocationResolver

//go:embed templates/*.html
var templatesFS embed.FS

// Server represents HTTP server instance
type Server struct {
	config     ConfigProvider
	prefs      PreferenceStore
	sessions   SessionStore
	dispatcher SearchDispatcher
	locator    LocationResolver
	version    string
	debug      bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle

	templates     *template.Template            // partials rendered by htmx endpoints
	pageTemplates map[string]*template.Template // full pages, each parsed with base layout
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// PreferenceStore keeps durable per-client preferences
type PreferenceStore interface {
	GetPreferences(ctx context.Context, clientID string) (domain.Preferences, error)
	SetPreference(ctx context.Context, clientID, key, value string) error
}

// SessionStore gives read access to per-session state
type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
}

// SearchDispatcher schedules debounced searches
type SearchDispatcher interface {
	Trigger(ctx context.Context, sessionID, clientID string) error
}

// LocationResolver resolves the session location from a browser report
type LocationResolver interface {
	Resolve(ctx context.Context, sessionID string, rep locate.Report) (domain.Location, error)
}

// Deps holds the collaborators of the server
type Deps struct {
	Config      ConfigProvider
	Preferences PreferenceStore
	Sessions    SessionStore
	Dispatcher  SearchDispatcher
	Locator     LocationResolver
}

// New initializes a new server instance
func New(deps Deps, version string, debug bool) *Server {
	s := &Server{
		config:     deps.Config,
		prefs:      deps.Preferences,
		sessions:   deps.Sessions,
		dispatcher: deps.Dispatcher,
		locator:    deps.Locator,
		version:    version,
		debug:      debug,
		router:     routegroup.New(http.NewServeMux()),
	}

	s.templates = template.Must(template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, partialTemplates...))
	s.pageTemplates = make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		files := append([]string{"templates/base.html", "templates/" + page}, partialTemplates...)
		s.pageTemplates[page] = template.Must(template.New(page).Funcs(templateFuncs()).ParseFS(templatesFS, files...))
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("mealfinder", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024)) // forms only
	s.router.Use(s.identify)
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /{$}", s.indexHandler)

	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /goals", s.goalsHandler)
		r.HandleFunc("POST /goal", s.selectGoalHandler)
		r.HandleFunc("POST /preferences/{field}", s.preferenceHandler)
		r.HandleFunc("POST /location", s.locationHandler)
		r.HandleFunc("POST /search", s.searchHandler)
		r.HandleFunc("GET /results", s.resultsHandler)
	})
}
