package middleware

import (
	"fmt"
	"net/http"
)

// JSONMuxErrors rewrites the plain-text 404/405 responses that
// http.ServeMux produces for unknown paths and wrong verbs into the
// standard JSON envelope. Responses the handlers write themselves are
// already JSON and pass through untouched.
func JSONMuxErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&muxErrorInterceptor{ResponseWriter: w}, r)
	})
}

type muxErrorInterceptor struct {
	http.ResponseWriter
	intercepted bool
}

func (w *muxErrorInterceptor) WriteHeader(status int) {
	if (status == http.StatusNotFound || status == http.StatusMethodNotAllowed) &&
		w.Header().Get("Content-Type") != "application/json" {
		w.intercepted = true
		w.Header().Set("Content-Type", "application/json")
		w.ResponseWriter.WriteHeader(status)

		message, errCode := "Not found", "not_found"
		if status == http.StatusMethodNotAllowed {
			message, errCode = "Method not allowed", "method_not_allowed"
		}
		fmt.Fprintf(w.ResponseWriter, `{"success":false,"message":%q,"error":%q}`, message, errCode)
		return
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *muxErrorInterceptor) Write(b []byte) (int, error) {
	if w.intercepted {
		// Swallow the mux's plain-text body, the envelope is already out.
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}
