package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"yatube/internal/service"
)

func profileURL(username string) string {
	return "/profile/" + username + "/"
}

func (h *Handlers) ProfileFollow(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	user, _ := service.CurrentUserFromContext(r.Context())

	_, err := h.FollowService.Follow(r.Context(), user.UserID, username)
	if err != nil && !errors.Is(err, service.ErrSelfFollow) {
		h.writeServiceError(w, r, err)
		return
	}

	http.Redirect(w, r, profileURL(username), http.StatusFound)
}

func (h *Handlers) ProfileUnfollow(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	user, _ := service.CurrentUserFromContext(r.Context())

	if err := h.FollowService.Unfollow(r.Context(), user.UserID, username); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	http.Redirect(w, r, profileURL(username), http.StatusFound)
}
