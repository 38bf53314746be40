package router

import (
	"net/http"
	"time"

	_ "tucing-suites-calendar/docs"
	"tucing-suites-calendar/internal/adapters/auth/gate"
	mem "tucing-suites-calendar/internal/adapters/storage/memory"
	"tucing-suites-calendar/internal/domain/bookings"
	"tucing-suites-calendar/internal/domain/calendar"
	"tucing-suites-calendar/internal/domain/dashboard"
	"tucing-suites-calendar/internal/middleware"
	"tucing-suites-calendar/internal/platform/clock"
	"tucing-suites-calendar/internal/platform/logger"
	"tucing-suites-calendar/internal/platform/metrics"
	"tucing-suites-calendar/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, monta POST /auth/login y se usa como verifier.
	Gate *gate.Gate

	// Opcional: si no viene, in-memory.
	Bookings bookings.Repository

	Log         logger.Logger
	Metrics     *metrics.Metrics // nil = sin /metrics
	MetricsPath string
	Swagger     bool

	Clock             clock.Clock
	DoubleClickWindow time.Duration
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}
	verifier := opts.AuthVerifier
	if verifier == nil && opts.Gate != nil {
		verifier = opts.Gate
	}

	var (
		observer middleware.HTTPObserver
		recorder dashboard.Recorder
	)
	if opts.Metrics != nil {
		observer = opts.Metrics
		recorder = opts.Metrics
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.AccessLog(log, observer))

	r.Use(middleware.AuthContext(verifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Metrics != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, opts.Metrics.Handler())
	}
	if opts.Swagger {
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}
	if opts.Gate != nil {
		gate.RegisterRoutes(r, opts.Gate)
	}

	repo := opts.Bookings
	if repo == nil {
		repo = mem.NewBookingsRepo()
	}

	// Services por módulo
	bookingsSvc := bookings.NewService(repo, log)

	// Rutas por módulo; todas exigen sesión
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireClaims)

		bookings.RegisterRoutes(pr, bookingsSvc)
		calendar.RegisterRoutes(pr, bookingsSvc, clk.Now)
		dashboard.RegisterRoutes(pr, dashboard.Deps{
			Bookings: bookingsSvc,
			Clock:    clk,
			Window:   opts.DoubleClickWindow,
			Log:      log,
			Metrics:  recorder,
		})
	})

	return r
}
