package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ScriptResult is the envelope returned by the executeScript tool.
type ScriptResult struct {
	Success bool           `json:"success"`
	Result  map[string]any `json:"result"`
	Error   *string        `json:"error"`
}

func (s *Server) handleExecuteScript(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	src := getStringArg(args, "script")
	if src == "" {
		msg := "Script cannot be empty"
		return jsonResult(ScriptResult{Error: &msg}), nil
	}
	if s.exec == nil {
		msg := "Script execution is disabled"
		return jsonResult(ScriptResult{Error: &msg}), nil
	}

	out, err := s.exec.Run(ctx, src)
	if err != nil {
		msg := err.Error()
		return jsonResult(ScriptResult{Error: &msg}), nil
	}
	return jsonResult(ScriptResult{Success: true, Result: out}), nil
}
