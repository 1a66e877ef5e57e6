package handlers

import (
	"net/http"
)

type StaticPage struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

var (
	aboutAuthor = StaticPage{
		Title: "Об авторе проекта",
		Text:  "Yatube написан как учебный проект: социальная сеть для публикации личных дневников.",
	}
	aboutTech = StaticPage{
		Title: "Технологии",
		Text:  "Go, PostgreSQL, MinIO для изображений и Kafka для событий.",
	}
)

func (h *Handlers) AboutAuthor(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, aboutAuthor, http.StatusOK)
}

func (h *Handlers) AboutTech(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, aboutTech, http.StatusOK)
}

type HealthResponse struct {
	Status      string `json:"status"`
	CountTables int    `json:"countTables"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.HealthService.Check(r.Context())
	if err != nil {
		h.Log.Warn("http", "health check failed", err)
		writeError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, HealthResponse{Status: "ok", CountTables: count}, http.StatusOK)
}
