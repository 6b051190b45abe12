package middleware

import "net/http"

// CORS stamps allow-origin headers on every response and answers OPTIONS
// preflight requests before they reach the endpoint handlers. With no
// configured origin the caller's own origin is echoed; with one configured,
// mismatching callers get "null".
func CORS(allowedOrigin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", resolveOrigin(allowedOrigin, r.Header.Get("Origin")))
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			h.Set("Access-Control-Max-Age", "86400")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func resolveOrigin(allowedOrigin, requestOrigin string) string {
	if requestOrigin == "" {
		requestOrigin = "*"
	}
	if allowedOrigin == "" || requestOrigin == allowedOrigin {
		return requestOrigin
	}
	return "null"
}
