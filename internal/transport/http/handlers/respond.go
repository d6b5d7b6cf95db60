package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pawhub/pawhub/internal/service"
	"github.com/pawhub/pawhub/pkg/validator"
)

// Every response, success or failure, uses the same envelope:
// {success, message?, data?, error?}.

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	body := map[string]any{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	writeJSON(w, status, body)
}

func writeError(w http.ResponseWriter, status int, message, errCode string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"message": message,
		"error":   errCode,
	})
}

func writeFieldError(w http.ResponseWriter, ferr *validator.FieldError) {
	writeError(w, http.StatusBadRequest, ferr.Message, "validation_error")
}

// writeInternal logs the real cause for operators and hands the
// caller a sanitized envelope.
func writeInternal(w http.ResponseWriter, op string, err error) {
	logrus.WithError(err).Errorf("%s failed", op)
	writeError(w, http.StatusInternalServerError, "Something went wrong", "internal")
}

const maxImageMemory = 10 << 20 // 10 MiB

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// imageFromForm pulls an optional image file out of an already-parsed
// multipart form. A missing file is not an error.
func imageFromForm(r *http.Request, field string) (*service.ImageUpload, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return &service.ImageUpload{ContentType: contentType, Data: data}, nil
}
