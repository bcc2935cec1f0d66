package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/rhyn0/anime-rest-api/internal/http/handler"
	"github.com/rhyn0/anime-rest-api/internal/http/middleware"
	"github.com/rhyn0/anime-rest-api/internal/http/response"
	"github.com/rhyn0/anime-rest-api/internal/security"
)

// Deps carries everything the router mounts. All fields are required.
type Deps struct {
	Logger   *slog.Logger
	JWTMgr   *security.JWTManager
	Sessions *handler.SessionHandler
	Users    *handler.UserHandler
	Shows    *handler.ShowHandler
}

// New builds the full route tree. Show reads are public; every mutation and
// the users subtree sit behind bearer auth, with user listing and deletion
// restricted to admins.
func New(d Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/login", d.Sessions.Login)
	r.Post("/refresh", d.Sessions.Refresh)

	r.Get("/shows", d.Shows.List)
	r.Get("/shows/{show_id}", d.Shows.Get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(d.JWTMgr))

		r.Post("/logout", d.Sessions.Logout)

		r.Post("/shows", d.Shows.Create)
		r.Patch("/shows/{show_id}", d.Shows.Patch)
		r.Delete("/shows/{show_id}", d.Shows.Delete)

		r.Route("/users", func(r chi.Router) {
			r.With(middleware.RequireAdmin).Get("/", d.Users.List)
			r.Post("/", d.Users.Create)
			r.Get("/{user_id}", d.Users.Get)
			r.Patch("/{user_id}", d.Users.Patch)
			r.With(middleware.RequireAdmin).Delete("/{user_id}", d.Users.Delete)
		})
	})

	return r
}
