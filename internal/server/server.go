package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/arabianlink/contact-api/internal/application"
	"github.com/arabianlink/contact-api/internal/config"
	mongodoc "github.com/arabianlink/contact-api/internal/infrastructure/mongo"
	adminhttp "github.com/arabianlink/contact-api/internal/interfaces/http/admin"
	commonhttp "github.com/arabianlink/contact-api/internal/interfaces/http/common"
	publichttp "github.com/arabianlink/contact-api/internal/interfaces/http/public"
	"github.com/arabianlink/contact-api/internal/notify"
)

// Server manages the HTTP server lifecycle and acts as the composition root,
// injecting application services into the route handlers.
type Server struct {
	logger         zerolog.Logger
	client         *mongo.Client
	database       *mongo.Database
	commands       application.SubmissionCommandService
	queries        application.SubmissionQueryService
	notifier       *notify.Notifier
	notifyTimeout  time.Duration
	addr           string
	allowedOrigins []string
}

// New assembles the repositories, services, and notifier from cfg and the
// connected Mongo client.
func New(cfg config.Config, client *mongo.Client) *Server {
	srv := &Server{
		logger:         cfg.Logger,
		client:         client,
		database:       client.Database(cfg.MongoDatabase),
		notifyTimeout:  cfg.NotifyTimeout,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
	}

	submissionRepo := mongodoc.NewSubmissionRepository(srv.database, cfg.SubmissionCollection)
	srv.commands = application.NewSubmissionCommandService(submissionRepo)
	srv.queries = application.NewSubmissionQueryService(submissionRepo)

	failureRepo := mongodoc.NewFailedNotificationRepository(srv.database, cfg.FailedNotificationCollection)
	srv.notifier = notify.FromConfig(notify.Config{
		SlackWebhookURL:  cfg.SlackWebhookURL,
		TelegramBotToken: cfg.TelegramBotToken,
		TelegramChatID:   cfg.TelegramChatID,
		SMTPServer:       cfg.SMTPServer,
		SMTPPort:         cfg.SMTPPort,
		SMTPUser:         cfg.SMTPUser,
		SMTPPassword:     cfg.SMTPPassword,
		RecipientEmail:   cfg.RecipientEmail,
	}, cfg.Logger, &http.Client{Timeout: cfg.NotifyTimeout}, failureRepo)

	return srv
}

// EnsureIndexes prepares the expiry and audit indexes the service relies on.
// Safe to call on every startup.
func (s *Server) EnsureIndexes(ctx context.Context, cfg config.Config) error {
	return mongodoc.EnsureIndexes(ctx, s.database, cfg.SubmissionCollection, cfg.FailedNotificationCollection)
}

// Run starts the HTTP server and blocks until shutdown. Routing and
// middleware are assembled here; domain logic stays in the inner layers.
func (s *Server) Run() error {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/", s.welcomeHandler())
	router.Get("/healthz", s.healthHandler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:        s.logger,
		Commands:      s.commands,
		Notifier:      s.notifier,
		NotifyTimeout: s.notifyTimeout,
	})
	publicHandler.Register(router)

	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:  s.logger,
		Queries: s.queries,
	})
	router.Route("/admin", adminHandler.Register)

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("HTTP server started")
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// withCORS returns middleware applying the fixed origin allow-list. Matching
// origins are echoed back with credentials enabled and all methods and
// headers permitted.
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed[origin] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || !originAllowed(origin, allowed) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
			allowHeaders := r.Header.Get("Access-Control-Request-Headers")
			if allowHeaders == "" {
				allowHeaders = "Authorization,Content-Type"
			}
			w.Header().Set("Access-Control-Allow-Headers", allowHeaders)
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed map[string]struct{}) bool {
	_, ok := allowed[origin]
	return ok
}

// welcomeHandler answers the root path with the fixed API greeting.
func (s *Server) welcomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"message": "Welcome to the ArabianLink API",
		})
	}
}

// healthHandler reports MongoDB reachability for monitoring. It reflects
// infrastructure state only, never domain state.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// shutdown disconnects the MongoDB client with a timeout so process exit
// does not leak connections.
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("error disconnecting MongoDB")
	}
}

// waitForShutdown watches ListenAndServe and OS signals to drive a graceful
// shutdown, keeping the OS-level concerns out of the rest of the app.
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatal().Err(err).Msg("server exited abnormally")
		}
	case sig := <-sigChan:
		srv.logger.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Error().Err(err).Msg("error during server shutdown")
		}
	}

	srv.shutdown(context.Background())
}
