package handlers

import (
	"errors"
	"net/http"
	"strings"

	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/service"
)

type UserResponse struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

func newAuthResponse(user *models.User, accessToken, refreshToken string) AuthResponse {
	return AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			UserID:    user.UserID,
			Username:  user.Username,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
	}
}

func (h *Handlers) setAccessCookie(w http.ResponseWriter, accessToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   int(h.Cfg.AccessTokenDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// safeNext accepts only local absolute paths as a post-login target.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, "/\\") {
		return next
	}
	return ""
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, fieldsBodyLimit)
	values, err := readValues(r, 0)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	form := service.SignupForm{
		Username:  strings.TrimSpace(values.Get("username")),
		Email:     strings.TrimSpace(values.Get("email")),
		Password:  values.Get("password"),
		FirstName: strings.TrimSpace(values.Get("first_name")),
		LastName:  strings.TrimSpace(values.Get("last_name")),
	}

	if _, err := h.AuthService.Register(r.Context(), form); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(),
		service.LoginForm{Username: form.Username, Password: form.Password})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.setAccessCookie(w, accessToken)
	writeSuccess(w, newAuthResponse(user, accessToken, refreshToken), http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r.URL.Query().Get("next"))

	if r.Method == http.MethodGet {
		writeSuccess(w, FormResponse{
			Action: "/auth/login/",
			Values: map[string]string{"username": "", "next": next},
		}, http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, fieldsBodyLimit)
	values, err := readValues(r, 0)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if v := safeNext(values.Get("next")); v != "" {
		next = v
	}

	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), service.LoginForm{
		Username: strings.TrimSpace(values.Get("username")),
		Password: values.Get("password"),
	})
	if errors.Is(err, service.ErrInvalidCreds) {
		writeError(w, service.ErrInvalidCreds.Error(), http.StatusUnauthorized)
		return
	}
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.setAccessCookie(w, accessToken)
	if next != "" {
		http.Redirect(w, r, next, http.StatusFound)
		return
	}
	writeSuccess(w, newAuthResponse(user, accessToken, refreshToken), http.StatusOK)
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, fieldsBodyLimit)
	values, err := readValues(r, 0)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	token := values.Get("refreshToken")
	if token == "" {
		writeError(w, "Отсутствует refreshToken", http.StatusBadRequest)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.RefreshTokens(r.Context(), token)
	if err != nil {
		writeError(w, "Refresh Token истек или недействителен", http.StatusBadRequest)
		return
	}

	h.setAccessCookie(w, accessToken)
	writeSuccess(w, newAuthResponse(user, accessToken, refreshToken), http.StatusOK)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}
