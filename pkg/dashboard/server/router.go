package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/securecookie"

	"github.com/octodash/octodash/cmd/dashboard/config"
	"github.com/octodash/octodash/pkg/dashboard/scm"
	"github.com/octodash/octodash/pkg/dashboard/server/session"
	"github.com/octodash/octodash/pkg/dashboard/store"
)

func SetupRouter(
	config *config.Config,
	sessionStore store.SessionStore,
	gitService scm.GitService,
) *chi.Mux {
	codec := securecookie.New([]byte(config.SessionSecret), nil)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)

	r.Use(middleware.WithValue("config", config))
	r.Use(middleware.WithValue("store", sessionStore))
	r.Use(middleware.WithValue("gitService", gitService))
	r.Use(middleware.WithValue("sessionCodec", codec))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{config.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Get("/auth/login", login)
	r.Get("/auth/callback", callback)
	r.Post("/auth/logout", logout)

	r.Group(func(r chi.Router) {
		r.Use(session.SetUser())

		r.Get("/health", health)
		r.Get("/api/session", sessionStatus)
	})

	r.Group(func(r chi.Router) {
		r.Use(session.SetUser())
		r.Use(session.MustUser())

		r.Get("/api/profile", profile)
		r.Get("/api/repositories", repositories)
		r.Get("/api/statistics", statistics)
	})

	filesDir := http.Dir(config.WebPath)
	fileServer(r, "/", filesDir)

	return r
}

// static files from a http.FileSystem
func fileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit any URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, r *http.Request) {
		ctx := chi.RouteContext(r.Context())
		pathPrefix := strings.TrimSuffix(ctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, r)
	})
}
