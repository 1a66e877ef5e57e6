package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"yatube/internal/service"
)

// body limit for requests that carry only text fields
const fieldsBodyLimit = 64 << 10

// readValues returns the submitted fields of a JSON, urlencoded or multipart
// body as url.Values.
func readValues(r *http.Request, maxMemory int64) (url.Values, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/json":
		fields := map[string]string{}
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			return nil, fmt.Errorf("неверный формат запроса: %w", err)
		}
		values := url.Values{}
		for k, v := range fields {
			values.Set(k, v)
		}
		return values, nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, fmt.Errorf("неверный формат запроса: %w", err)
		}
		return r.Form, nil
	default:
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("неверный формат запроса: %w", err)
		}
		return r.Form, nil
	}
}

// readImage returns the uploaded "image" file, or nil when none was sent.
// At most limit+1 bytes are read so oversized files can still be reported.
func readImage(r *http.Request, limit int64) (*service.ImageUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать файл: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать файл: %w", err)
	}

	return &service.ImageUpload{FileName: header.Filename, Data: data}, nil
}
