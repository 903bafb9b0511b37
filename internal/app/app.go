// Package app wires the booking edge together: per-browser booking sessions,
// the outbound ticketing gateway and the HTTP surface the frontend consumes.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/cinewave/booking-edge/internal/domain"
	"github.com/cinewave/booking-edge/internal/gateway"
	appvalidator "github.com/cinewave/booking-edge/internal/validator"
	"github.com/cinewave/booking-edge/internal/vcs"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/riandyrn/otelchi"
)

var (
	version = vcs.Version()
)

// Gateway is everything the edge needs from the ticketing backend.
type Gateway interface {
	domain.MovieGateway
	domain.TheatreGateway
	domain.ShowGateway
	domain.BookingGateway
}

type application struct {
	config         Config
	logger         *slog.Logger
	validator      *validator.Validate
	sessionManager *scs.SessionManager
	sessions       *sessionRegistry
	gateway        Gateway
}

type Config struct {
	Port             int
	Env              string
	BackendURL       string
	OtelCollectorUrl string
	ResetDwell       time.Duration
	SessionIdleTime  time.Duration
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.BackendURL, "backend-url", "http://localhost:8000/api/v1", "Ticketing backend base URL")
	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")

	flag.DurationVar(&cfg.ResetDwell, "reset-dwell", 5*time.Second, "How long a confirmed booking is displayed before the session resets")
	flag.DurationVar(&cfg.SessionIdleTime, "session-idle-time", 20*time.Minute, "Browser session idle timeout")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	app := &application{
		config:         cfg,
		logger:         logger,
		validator:      appvalidator.NewValidator(),
		sessionManager: newSessionManager(cfg),
		sessions:       newSessionRegistry(),
		gateway:        gateway.NewClient(cfg.BackendURL, logger),
	}

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	return app.run()
}

// newSessionManager builds the cookie session layer. The default in-memory
// store is kept on purpose: booking sessions are ephemeral and die with the
// process.
func newSessionManager(cfg Config) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.IdleTimeout = cfg.SessionIdleTime
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func (app *application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("booking-edge", otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)
	r.Use(app.ensureGuestSession)

	r.Get("/healthcheck", app.HealthcheckHandler)

	r.Get("/movies/{movieId}", app.GetMovieHandler)
	r.Get("/theatres", app.ListTheatresHandler)
	r.Get("/theatres/{theatreId}/screens", app.ListScreensHandler)
	r.Get("/shows", app.ListShowsHandler)

	r.Route("/session", func(r chi.Router) {
		r.Get("/", app.GetSessionHandler)
		r.Get("/watch", app.WatchSessionHandler)
		r.Post("/theatre", app.SelectTheatreHandler)
		r.Post("/screen", app.SelectScreenHandler)
		r.Post("/show", app.SelectShowHandler)
		r.Get("/seat-layout", app.GetSeatLayoutHandler)
		r.Post("/seats/{seatId}/toggle", app.ToggleSeatHandler)
		r.Post("/confirm", app.ConfirmBookingHandler)
		r.Post("/confirm/resume", app.ResumeConfirmHandler)
		r.Post("/reset", app.ResetSessionHandler)
	})

	return r
}
