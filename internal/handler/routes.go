package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"yatube/internal/cache"
	"yatube/internal/middleware"
)

// NewRouter registers every route and wraps the router in the common
// middleware stack.
func NewRouter(h *Handlers, pageCache *cache.PageCache) http.Handler {
	r := mux.NewRouter().StrictSlash(true)
	r.NotFoundHandler = http.HandlerFunc(NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(MethodNotAllowed)

	auth := func(f http.HandlerFunc) http.Handler {
		return middleware.LoginRequired(f)
	}

	r.Handle("/", pageCache.Middleware(http.HandlerFunc(h.Index))).Methods(http.MethodGet)
	r.HandleFunc("/group/{slug}/", h.GroupPosts).Methods(http.MethodGet)
	r.HandleFunc("/profile/{username}/", h.Profile).Methods(http.MethodGet)
	r.Handle("/profile/{username}/follow/", auth(h.ProfileFollow)).Methods(http.MethodGet)
	r.Handle("/profile/{username}/unfollow/", auth(h.ProfileUnfollow)).Methods(http.MethodGet)
	r.Handle("/follow/", auth(h.FollowIndex)).Methods(http.MethodGet)

	r.Handle("/create/", auth(h.PostCreate)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/posts/{id}/", h.PostDetail).Methods(http.MethodGet)
	r.Handle("/posts/{id}/edit/", auth(h.PostEdit)).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/posts/{id}/delete/", auth(h.PostDelete)).Methods(http.MethodPost)
	r.Handle("/posts/{id}/comment/", auth(h.AddComment)).Methods(http.MethodPost)

	r.HandleFunc("/auth/signup/", h.Signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/login/", h.Login).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/auth/refresh-token/", h.RefreshToken).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout/", h.Logout).Methods(http.MethodGet)

	r.HandleFunc("/about/author/", h.AboutAuthor).Methods(http.MethodGet)
	r.HandleFunc("/about/tech/", h.AboutTech).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	return middleware.Chain(r,
		middleware.RequestID,
		middleware.Recover(h.Log),
		middleware.Logging(h.Log),
		middleware.CORS,
		middleware.Authenticate(h.AuthService),
	)
}
