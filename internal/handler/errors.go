package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"yatube/internal/middleware"
	"yatube/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// FormResponse describes a form: where it posts to, the current values and,
// after a rejected submission, the per-field errors.
type FormResponse struct {
	Action string            `json:"action"`
	Values map[string]string `json:"values"`
	Errors map[string]string `json:"errors,omitempty"`
	IsEdit bool              `json:"isEdit,omitempty"`
	Groups any               `json:"groups,omitempty"`
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError maps service errors onto HTTP statuses. Unexpected
// errors are logged and reported as 500.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, "Страница не найдена", http.StatusNotFound)
	case errors.Is(err, service.ErrForbidden):
		writeError(w, "Доступ запрещен", http.StatusForbidden)
	case errors.As(err, &verr):
		writeSuccess(w, FormResponse{Values: map[string]string{}, Errors: verr.Fields}, http.StatusBadRequest)
	default:
		h.Log.Error("http", "request failed", err,
			"uri", r.URL.RequestURI(),
			"request_id", middleware.RequestIDFromContext(r.Context()),
		)
		writeError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, "Страница не найдена", http.StatusNotFound)
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
}
