package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"yatube/internal/models"
	"yatube/internal/service"
)

// multipart overhead allowed on top of the image size limit
const formOverhead = 1 << 20

type PostDetailResponse struct {
	*service.PostDetail
	Form FormResponse `json:"form"`
}

func postURL(postID string) string {
	return "/posts/" + postID + "/"
}

func (h *Handlers) PostDetail(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	detail, err := h.PostService.PostDetail(r.Context(), postID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, PostDetailResponse{
		PostDetail: detail,
		Form: FormResponse{
			Action: postURL(postID) + "comment/",
			Values: map[string]string{"text": ""},
		},
	}, http.StatusOK)
}

func (h *Handlers) postForm(r *http.Request) (service.PostForm, error) {
	values, err := readValues(r, h.Cfg.MaxUploadSize)
	if err != nil {
		return service.PostForm{}, err
	}

	image, err := readImage(r, h.Cfg.MaxUploadSize)
	if err != nil {
		return service.PostForm{}, err
	}

	return service.PostForm{
		Text:  values.Get("text"),
		Group: values.Get("group"),
		Image: image,
	}, nil
}

// writePostForm renders the post form together with the groups to pick from.
func (h *Handlers) writePostForm(w http.ResponseWriter, r *http.Request, form FormResponse, statusCode int) {
	groups, err := h.GroupService.ListGroups(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if groups == nil {
		groups = []models.Group{}
	}
	form.Groups = groups

	writeSuccess(w, form, statusCode)
}

func (h *Handlers) PostCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := service.CurrentUserFromContext(r.Context())
	blank := FormResponse{
		Action: "/create/",
		Values: map[string]string{"text": "", "group": ""},
	}

	if r.Method == http.MethodGet {
		h.writePostForm(w, r, blank, http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+formOverhead)
	form, err := h.postForm(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err = h.PostService.CreatePost(r.Context(), user.UserID, form)
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		blank.Values = map[string]string{"text": form.Text, "group": form.Group}
		blank.Errors = verr.Fields
		h.writePostForm(w, r, blank, http.StatusBadRequest)
		return
	}
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	http.Redirect(w, r, profileURL(user.Username), http.StatusFound)
}

func (h *Handlers) PostEdit(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]
	user, _ := service.CurrentUserFromContext(r.Context())

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if post.AuthorID != user.UserID {
		http.Redirect(w, r, postURL(postID), http.StatusFound)
		return
	}

	current := FormResponse{
		Action: postURL(postID) + "edit/",
		Values: map[string]string{"text": post.Text, "group": ""},
		IsEdit: true,
	}
	if post.Group != nil {
		current.Values["group"] = post.Group.Slug
	}

	if r.Method == http.MethodGet {
		h.writePostForm(w, r, current, http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+formOverhead)
	form, err := h.postForm(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err = h.PostService.UpdatePost(r.Context(), user.UserID, postID, form)
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		current.Values = map[string]string{"text": form.Text, "group": form.Group}
		current.Errors = verr.Fields
		h.writePostForm(w, r, current, http.StatusBadRequest)
		return
	case errors.Is(err, service.ErrForbidden):
		http.Redirect(w, r, postURL(postID), http.StatusFound)
		return
	case err != nil:
		h.writeServiceError(w, r, err)
		return
	}

	http.Redirect(w, r, postURL(postID), http.StatusFound)
}

func (h *Handlers) PostDelete(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]
	user, _ := service.CurrentUserFromContext(r.Context())

	err := h.PostService.DeletePost(r.Context(), user.UserID, postID)
	if errors.Is(err, service.ErrForbidden) {
		http.Redirect(w, r, postURL(postID), http.StatusFound)
		return
	}
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	http.Redirect(w, r, profileURL(user.Username), http.StatusFound)
}

// AddComment always returns to the post; an empty comment is dropped.
func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]
	user, _ := service.CurrentUserFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, fieldsBodyLimit)
	values, err := readValues(r, 0)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err = h.PostService.AddComment(r.Context(), user.UserID, postID, service.CommentForm{Text: values.Get("text")})
	var verr *service.ValidationError
	if err != nil && !errors.As(err, &verr) {
		h.writeServiceError(w, r, err)
		return
	}

	http.Redirect(w, r, postURL(postID), http.StatusFound)
}
