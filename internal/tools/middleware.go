package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/devopsnextgenx/mcp-crypto-server/internal/audit"
	"github.com/devopsnextgenx/mcp-crypto-server/internal/metrics"
	"github.com/devopsnextgenx/mcp-crypto-server/internal/script"
)

// wrap surrounds a tool handler with request/response logging, Prometheus
// counters, and the audit trail.
func (s *Server) wrap(tool string, next mcp.ToolHandler) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		s.logger.Info("tool call", "tool", tool, "args", rawArgs(req))

		res, err := next(ctx, req)
		elapsed := time.Since(start)

		success := err == nil && res != nil && !res.IsError
		text := resultText(res)
		if success {
			success = envelopeSuccess(text)
		}

		metrics.ObserveInvocation(tool, success, elapsed)
		s.logger.Info("tool done",
			"tool", tool,
			"success", success,
			"duration", elapsed,
		)

		s.record(tool, req, text, success, err, elapsed)
		return res, err
	}
}

func (s *Server) record(tool string, req *mcp.CallToolRequest, text string, success bool, err error, elapsed time.Duration) {
	if s.audit == nil {
		return
	}
	inv := audit.Invocation{
		Tool:       tool,
		Params:     rawArgs(req),
		Result:     text,
		Success:    success,
		DurationMs: elapsed.Milliseconds(),
	}
	if err != nil {
		inv.Error = err.Error()
	}
	if args, perr := parseArgs(req); perr == nil {
		if src := getStringArg(args, "script"); src != "" {
			inv.ScriptHash = script.Hash(src)
		}
	}
	if rerr := s.audit.Record(inv); rerr != nil {
		s.logger.Warn("audit record failed", "tool", tool, "err", rerr)
	}
}

func rawArgs(req *mcp.CallToolRequest) string {
	if req == nil || req.Params.Arguments == nil {
		return "{}"
	}
	return string(req.Params.Arguments)
}

func resultText(res *mcp.CallToolResult) string {
	if res == nil || len(res.Content) == 0 {
		return ""
	}
	if tc, ok := res.Content[0].(*mcp.TextContent); ok {
		return tc.Text
	}
	return ""
}

// envelopeSuccess reads the success flag out of an envelope payload. Payloads
// that are not envelopes count as successful.
func envelopeSuccess(text string) bool {
	var env struct {
		Success *bool `json:"success"`
	}
	if err := json.Unmarshal([]byte(text), &env); err != nil || env.Success == nil {
		return true
	}
	return *env.Success
}
