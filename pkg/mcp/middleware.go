package mcp

import (
	"net/http"
	"strings"
)

// corsMiddleware applies the configured allowed origins to the HTTP
// transports. An empty list leaves responses without CORS headers.
func corsMiddleware(allowOrigins []string, next http.Handler) http.Handler {
	if len(allowOrigins) == 0 {
		return next
	}
	allowed := make(map[string]bool, len(allowOrigins))
	wildcard := false
	for _, o := range allowOrigins {
		if o == "*" {
			wildcard = true
		}
		allowed[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (wildcard || allowed[origin]) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST")
			w.Header().Set("Access-Control-Allow-Headers", "*")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// allowedHostsMiddleware rejects requests whose Host header is not in the
// configured allow list. An empty list allows any host.
func allowedHostsMiddleware(allowedHosts []string, next http.Handler) http.Handler {
	if len(allowedHosts) == 0 {
		return next
	}
	allowed := make(map[string]bool, len(allowedHosts))
	for _, h := range allowedHosts {
		allowed[strings.ToLower(h)] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := strings.ToLower(r.Host)
		// Host may carry a port
		if i := strings.LastIndex(host, ":"); i > 0 && !strings.Contains(host[i:], "]") {
			host = host[:i]
		}
		if !allowed[host] && !allowed[r.Host] {
			http.Error(w, "invalid host header", http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r)
	})
}
