package middleware

import (
	"encoding/json"
	"net/http"
)

// writeEnvelope emits the same failure envelope the handlers use, so
// middleware rejections are indistinguishable in shape from handler
// rejections.
func writeEnvelope(w http.ResponseWriter, status int, message, errCode string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
		"error":   errCode,
	})
}
