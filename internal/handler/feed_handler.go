package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"yatube/internal/models"
	"yatube/internal/service"
)

// FollowIndexResponse is the subscription feed together with the authors it
// is built from.
type FollowIndexResponse struct {
	*service.FeedPage
	Following []models.Author `json:"following"`
}

func pageParam(r *http.Request) string {
	return r.URL.Query().Get("page")
}

// Index is the global feed. It is served through the page cache.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	feed, err := h.FeedService.Index(r.Context(), pageParam(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, feed, http.StatusOK)
}

func (h *Handlers) GroupPosts(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	feed, err := h.FeedService.GroupFeed(r.Context(), slug, pageParam(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, feed, http.StatusOK)
}

func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	var viewerID string
	if user, ok := service.CurrentUserFromContext(r.Context()); ok {
		viewerID = user.UserID
	}

	profile, err := h.FeedService.Profile(r.Context(), username, viewerID, pageParam(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, profile, http.StatusOK)
}

// FollowIndex lists posts by the authors the caller follows.
func (h *Handlers) FollowIndex(w http.ResponseWriter, r *http.Request) {
	user, _ := service.CurrentUserFromContext(r.Context())

	feed, err := h.FeedService.FollowFeed(r.Context(), user.UserID, pageParam(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	authors, err := h.FollowService.ListFollowing(r.Context(), user.UserID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	following := make([]models.Author, 0, len(authors))
	for _, author := range authors {
		following = append(following, author.Author())
	}

	writeSuccess(w, FollowIndexResponse{FeedPage: feed, Following: following}, http.StatusOK)
}
