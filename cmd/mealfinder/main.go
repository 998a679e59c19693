package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/mealfinder/pkg/config"
	"github.com/umputun/mealfinder/pkg/domain"
	"github.com/umputun/mealfinder/pkg/locate"
	"github.com/umputun/mealfinder/pkg/repository"
	"github.com/umputun/mealfinder/pkg/search"
	"github.com/umputun/mealfinder/pkg/session"
	"github.com/umputun/mealfinder/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults are used if not set"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)

	log.Printf("[INFO] starting mealfinder version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires storage, session state, search and the http server, and blocks until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	setupLog(opts.Debug, cfg.Search.APIKey) // mask the key in logs

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	sessions, runSessions, err := makeSessionStore(ctx, cfg.Session)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	searchCfg := cfg.GetSearchConfig()
	log.Printf("[INFO] meal search endpoint %s, debounce %v", searchCfg.Endpoint, searchCfg.Debounce)
	dispatcher := search.NewDispatcher(search.DispatcherConfig{
		Searcher:    search.NewClient(searchCfg.Endpoint, searchCfg.APIKey, searchCfg.Timeout),
		Preferences: repos.Preference,
		Sessions:    sessions,
		Debounce:    searchCfg.Debounce,
		Timeout:     searchCfg.Timeout,
	})

	fallback := domain.Location{
		GeoPoint: domain.GeoPoint{Lat: cfg.Location.FallbackLat, Lon: cfg.Location.FallbackLon},
		Name:     cfg.Location.FallbackName,
	}

	locator := locate.NewResolver(sessions, fallback)
	fb := locator.Fallback()
	log.Printf("[INFO] fallback location %s (%.4f, %.4f)", fb.Name, fb.Lat, fb.Lon)

	srv := server.New(server.Deps{
		Config:      cfg,
		Preferences: repos.Preference,
		Sessions:    sessions,
		Dispatcher:  dispatcher,
		Locator:     locator,
	}, revision, opts.Debug)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error { return dispatcher.Run(gctx) })
	g.Go(func() error { return runSessions(gctx) })
	return g.Wait()
}

// makeSessionStore creates the configured session store and the function keeping it alive until ctx is done
func makeSessionStore(ctx context.Context, cfg config.SessionConfig) (session.Store, func(context.Context) error, error) {
	switch cfg.Backend {
	case config.SessionBackendRedis:
		rs, err := session.NewRedisStore(ctx, cfg.RedisURL, cfg.TTL)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("[INFO] sessions stored in redis, ttl %v", cfg.TTL)
		return rs, func(ctx context.Context) error {
			<-ctx.Done()
			return rs.Close()
		}, nil
	default:
		ms := session.NewMemoryStore(cfg.TTL)
		log.Printf("[INFO] sessions stored in memory, ttl %v", cfg.TTL)
		return ms, func(ctx context.Context) error { return ms.Run(ctx, cfg.SweepInterval) }, nil
	}
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
