package main

import (
	"context"
	"database/sql"
	"errors"
	"expvar"
	"flag"
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"CourtsideApi/internal/data"
	"CourtsideApi/internal/hub"
	"CourtsideApi/internal/jsonlog"
	"CourtsideApi/internal/mailer"
	"CourtsideApi/internal/summary"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

type config struct {
	version string
	port    int
	env     string
	db      struct {
		dsn          string
		maxOpenConns int
		maxIdleConns int
		maxIdleTime  string
	}
	redis struct {
		url string
	}
	limiter struct {
		rps     float64
		burst   int
		enabled bool
	}
	smtp struct {
		host     string
		port     int
		username string
		password string
		sender   string
	}
	summarizer struct {
		url    string
		apiKey string
	}
	cors struct {
		trustedOrigins []string
	}
}

type application struct {
	logger     *jsonlog.Logger
	config     config
	models     data.Models
	mailer     mailer.Mailer
	summarizer *summary.Client
	liveGames  *liveGames
	wg         sync.WaitGroup
}

// liveGames is the registry of in-progress games keyed by pin. REST handlers
// touch it concurrently, so access goes through the mutex; everything inside
// a hub is serialized by the hub itself.
type liveGames struct {
	mu    sync.Mutex
	games map[string]*hub.Hub
}

func (l *liveGames) get(pin string) (*hub.Hub, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	h, ok := l.games[pin]
	return h, ok
}

func (l *liveGames) put(pin string, h *hub.Hub) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.games[pin] = h
}

func (l *liveGames) remove(pin string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.games, pin)
}

func (l *liveGames) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.games)
}

func (l *liveGames) contains(pin string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.games[pin]
	return ok
}

func (l *liveGames) all() []*hub.Hub {
	l.mu.Lock()
	defer l.mu.Unlock()
	hubs := make([]*hub.Hub, 0, len(l.games))
	for _, h := range l.games {
		hubs = append(hubs, h)
	}
	return hubs
}

func main() {
	var cfg config

	// Server Config
	cfg.version = "1.0.0"
	flag.IntVar(&cfg.port, "port", 8008, "http server port")
	flag.StringVar(&cfg.env, "env", "development", "Environment (development|staging|production)")

	// Database Config
	flag.StringVar(&cfg.db.dsn, "db-dsn", "", "DB connection string")
	flag.IntVar(&cfg.db.maxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.IntVar(&cfg.db.maxIdleConns, "db-max-idle-conns", 25, "PostgreSQL max idle connections")
	flag.StringVar(&cfg.db.maxIdleTime, "db-max-idle-time", "15m",
		"PostgreSQL max connection idle time")

	// Redis Config
	flag.StringVar(&cfg.redis.url, "redis-url", "redis://localhost:6379/0",
		"Redis connection URL")

	// Limiter Config
	flag.Float64Var(&cfg.limiter.rps, "limiter-rps", 2, "Rate limiter maximum requests per second")
	flag.IntVar(&cfg.limiter.burst, "limiter-burst", 4, "Rate limiter maximum burst")
	flag.BoolVar(&cfg.limiter.enabled, "limiter-enabled", true, "Enable rate limiter")

	// SMTP Config
	flag.StringVar(&cfg.smtp.host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.smtp.port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.smtp.username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.smtp.password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.smtp.sender, "smtp-sender", "Courtside <no-reply@courtside.example>",
		"SMTP sender")

	// Summarizer Config
	flag.StringVar(&cfg.summarizer.url, "summarizer-url", "",
		"Text generation service base URL (empty disables summaries)")
	flag.StringVar(&cfg.summarizer.apiKey, "summarizer-api-key", "",
		"Text generation service API key")

	// CORS Config
	flag.Func("cors-trusted-origins", "Trusted CORS origins (space separated)", func(val string) error {
		origins := strings.Fields(val)
		if i := slices.Index(origins, "*"); i != -1 {
			return errors.New("cannot set CORS trusted origin to \"*\" with authorization header" +
				" in cross-origin requests")
		}
		cfg.cors.trustedOrigins = origins
		return nil
	})

	// Version
	displayVersion := flag.Bool("version", false, "Show API version and immediately exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version: %s\n", cfg.version)
		os.Exit(0)
	}

	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	db, err := openDB(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", nil)

	rdb, err := openRedis(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer rdb.Close()
	logger.PrintInfo("redis connection established", nil)

	expvar.NewString("version").Set(cfg.version)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("database", expvar.Func(func() any {
		return db.Stats()
	}))
	expvar.Publish("timestamp", expvar.Func(func() any {
		return time.Now().Unix()
	}))

	app := &application{
		logger:     logger,
		config:     cfg,
		models:     data.NewModels(db, rdb),
		summarizer: summary.NewClient(cfg.summarizer.url, cfg.summarizer.apiKey),
		liveGames:  &liveGames{games: make(map[string]*hub.Hub)},
		mailer: mailer.New(cfg.smtp.host, cfg.smtp.port, cfg.smtp.username, cfg.smtp.password,
			cfg.smtp.sender),
	}

	err = app.serve()
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}

func openDB(cfg config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.db.maxOpenConns)
	db.SetMaxIdleConns(cfg.db.maxIdleConns)
	duration, err := time.ParseDuration(cfg.db.maxIdleTime)
	if err != nil {
		return nil, err
	}
	db.SetConnMaxIdleTime(duration)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func openRedis(cfg config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.redis.url)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}
