// Package middleware provides the HTTP middleware shared by every route.
package middleware

import "net/http"

const (
	allowHeaders = "Content-Type,Authorization,true"
	allowMethods = "GET,PUT,POST,DELETE,OPTIONS"
)

// CORS allows every origin and adds the allow-headers and allow-methods
// headers to every response, errors included. Preflight requests are
// answered directly.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", allowHeaders)
		h.Set("Access-Control-Allow-Methods", allowMethods)

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
