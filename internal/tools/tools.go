// Package tools wires the tool handlers onto an MCP server: base64
// encryption, arithmetic, script execution, and discovery, plus the
// version/status/tools resources.
package tools

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/devopsnextgenx/mcp-crypto-server/internal/audit"
	"github.com/devopsnextgenx/mcp-crypto-server/internal/registry"
	"github.com/devopsnextgenx/mcp-crypto-server/internal/resources"
	"github.com/devopsnextgenx/mcp-crypto-server/internal/script"
)

// Server wraps the MCP server with tool handlers.
type Server struct {
	mcp      *mcp.Server
	registry *registry.Registry
	exec     *script.Executor
	audit    *audit.Store
	status   *resources.StatusProvider
	logger   *slog.Logger
}

// Options carries the optional collaborators of a Server. Audit may be nil
// to disable invocation history; Logger defaults to slog.Default.
type Options struct {
	Executor *script.Executor
	Audit    *audit.Store
	Logger   *slog.Logger
}

// NewServer creates an MCP server with the full tool catalog registered.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reg := registry.New()
	for _, t := range registry.BuiltinCatalog() {
		reg.Register(t)
	}
	srv := &Server{
		registry: reg,
		exec:     opts.Executor,
		audit:    opts.Audit,
		logger:   logger,
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    resources.ServerName,
				Version: resources.ServerVersion,
			},
			nil,
		),
	}
	srv.status = resources.NewStatusProvider(reg, opts.Audit)
	srv.registerTools()
	srv.registerResources()
	return srv
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Registry returns the tool catalog.
func (s *Server) Registry() *registry.Registry {
	return s.registry
}

// Status returns the live status provider.
func (s *Server) Status() *resources.StatusProvider {
	return s.status
}

func (s *Server) registerTools() {
	handlers := map[string]mcp.ToolHandler{
		"encrypt":       s.handleEncrypt,
		"decrypt":       s.handleDecrypt,
		"add":           s.calcHandler("add"),
		"subtract":      s.calcHandler("subtract"),
		"multiply":      s.calcHandler("multiply"),
		"divide":        s.calcHandler("divide"),
		"modulo":        s.calcHandler("modulo"),
		"executeScript": s.handleExecuteScript,
		"listTools":     s.handleListTools,
	}
	for _, t := range s.registry.Tools() {
		handler, ok := handlers[t.Name]
		if !ok {
			s.logger.Warn("catalog tool has no handler", "tool", t.Name)
			continue
		}
		s.mcp.AddTool(&mcp.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		}, s.wrap(t.Name, handler))
	}
}

// jsonResult marshals data to JSON and returns as tool result.
func jsonResult(data any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errResult("json marshal err=" + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

// errResult returns a tool result indicating a protocol-level error.
// Domain failures stay inside the {success:false} envelope instead.
func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}

// parseArgs unmarshals the raw JSON arguments into a map.
func parseArgs(req *mcp.CallToolRequest) (map[string]any, error) {
	if req.Params.Arguments == nil || len(req.Params.Arguments) == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &m); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return m, nil
}

// getStringArg extracts a string argument from parsed args.
func getStringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// getBoolArg extracts a boolean argument with a default value.
func getBoolArg(args map[string]any, key string, defaultVal bool) bool {
	v, ok := args[key]
	if !ok {
		return defaultVal
	}
	b, ok := v.(bool)
	if !ok {
		return defaultVal
	}
	return b
}
