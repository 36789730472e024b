package transport

import (
	"net/http"
)

// NewRouter mounts the MCP handler under /mcp and an unauthenticated health
// check under /health. auth may be nil.
func NewRouter(mcpHandler http.Handler, auth func(http.Handler) http.Handler) http.Handler {
	if auth != nil {
		mcpHandler = auth(mcpHandler)
	}

	mux := http.NewServeMux()
	mux.Handle("/mcp", mcpHandler)
	mux.Handle("/mcp/", mcpHandler)
	mux.HandleFunc("GET /health", handleHealth)
	return mux
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
