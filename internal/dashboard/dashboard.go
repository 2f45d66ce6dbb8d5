// Package dashboard serves the local research dashboard: a browser UI in
// front of the same backend client the CLI uses. It binds to localhost,
// reuses the CLI's stored session, and never caches the backend's answers
// between requests.
package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/litscout/litscout/internal/api"
	"github.com/litscout/litscout/internal/auth"
	"github.com/litscout/litscout/internal/config"
	"github.com/litscout/litscout/internal/history"
	"github.com/litscout/litscout/internal/notify"
	"github.com/litscout/litscout/internal/prefs"
)

// Server hosts the dashboard on one local port.
type Server struct {
	cfg      config.DashboardConfig
	client   *api.Client
	session  *auth.Session
	prefs    *prefs.Store
	history  *history.Store
	notifier *notify.Notifier
	hub      *Hub
	log      zerolog.Logger

	router     chi.Router
	httpServer *http.Server
}

// New creates a dashboard server. The history store may be nil; the
// recent-searches page then shows an empty list.
func New(cfg config.DashboardConfig, client *api.Client, session *auth.Session,
	prefStore *prefs.Store, historyStore *history.Store, notifier *notify.Notifier,
	log zerolog.Logger) *Server {

	s := &Server{
		cfg:      cfg,
		client:   client,
		session:  session,
		prefs:    prefStore,
		history:  historyStore,
		notifier: notifier,
		hub:      NewHub(log),
		log:      log,
	}
	if notifier != nil {
		notifier.AddSink(s.hub)
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLogin)
	r.Get("/register", s.handleRegisterPage)
	r.Post("/register", s.handleRegister)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/", s.handleRoot)
		r.Post("/logout", s.handleLogout)
		r.Post("/prefs/sidebar", s.handleSidebarToggle)
		r.Get("/ws/notifications", s.hub.HandleWebSocket)

		r.Get("/projects", s.handleProjects)
		r.Get("/projects/create", s.handleCreateProjectPage)
		r.Post("/projects/create", s.handleCreateProject)

		r.Route("/projects/view/{project}", func(r chi.Router) {
			r.Get("/", s.handleProjectHome)
			r.Get("/retrieve", s.handleRetrievePage)
			r.Post("/retrieve", s.handleRetrieve)
			r.Get("/files", s.handleFiles)
			r.Post("/files/include", s.handleInclude)
			r.Post("/files/exclude", s.handleExclude)
			r.Post("/files/undo", s.handleUndo)
			r.Post("/files/delete", s.handleDelete)
			r.Get("/files/metadata", s.handleMetadata)
			r.Get("/files/download", s.handleDownload)
			r.Get("/terms", s.handleTermsPage)
			r.Post("/terms", s.handleTerms)
			r.Get("/extract", s.handleExtractPage)
			r.Post("/extract", s.handleExtract)
			r.Get("/words", s.handleWordsPage)
			r.Post("/words", s.handleWords)
		})

		r.Get("/recent", s.handleRecent)
		r.Get("/help", s.handleHelp)
	})

	return r
}

// requireAuth redirects unauthenticated browsers to the login page for
// every protected path.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.session.Authenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleRoot probes the backend for existing projects on every request,
// never caching the outcome: no projects, or a listing that cannot be
// read, lands on project creation; anything else on the project list.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	projects, err := s.client.Projects(r.Context())
	if err != nil {
		if api.IsKind(err, api.KindAuthExpired) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/projects/create", http.StatusSeeOther)
		return
	}
	if len(projects) == 0 {
		http.Redirect(w, r, "/projects/create", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on localhost at the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf("127.0.0.1:%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.log.Info().Str("addr", addr).Msg("dashboard listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
