package tools

import (
	"encoding/json"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/devopsnextgenx/mcp-crypto-server/internal/metrics"
	"github.com/devopsnextgenx/mcp-crypto-server/internal/resources"
)

const landingPage = `<!DOCTYPE html>
<html>
<head><title>MCP Crypto Server</title></head>
<body>
<h1>MCP Crypto Server</h1>
<p>Model Context Protocol server for base64 encryption, arithmetic, and sandboxed script execution.</p>
<ul>
<li><a href="/test/health">/test/health</a> - health probe</li>
<li><a href="/test/tools">/test/tools</a> - tool listing</li>
<li><a href="/test/resources">/test/resources</a> - resource payloads</li>
<li><a href="/metrics">/metrics</a> - Prometheus metrics</li>
<li><code>/mcp</code> - MCP streamable HTTP endpoint</li>
<li><code>/sse</code> - MCP SSE endpoint</li>
</ul>
</body>
</html>
`

// HTTPHandler builds the MCP-over-HTTP surface: the streamable endpoint at
// /mcp, the SSE endpoint at /sse, plus the browser test routes and metrics.
func (s *Server) HTTPHandler() http.Handler {
	getServer := func(*http.Request) *mcp.Server { return s.mcp }

	mux := http.NewServeMux()
	mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(getServer, nil))
	mux.Handle("/mcp/", mcp.NewStreamableHTTPHandler(getServer, nil))
	mux.Handle("/sse", mcp.NewSSEHandler(getServer, nil))
	mux.Handle("/metrics", metrics.Handler())

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(landingPage))
	})
	mux.HandleFunc("/test/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"status": "healthy",
			"server": resources.ServerName,
		})
	})
	mux.HandleFunc("/test/tools", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.registry.List(true))
	})
	mux.HandleFunc("/test/resources", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"version": resources.Version(),
			"status":  s.status.Snapshot(),
		})
	})
	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
