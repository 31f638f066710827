package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/devopsnextgenx/mcp-crypto-server/internal/calc"
	"github.com/devopsnextgenx/mcp-crypto-server/internal/params"
)

var calcOps = map[string]func(a, b float64) calc.Result{
	"add":      calc.Add,
	"subtract": calc.Subtract,
	"multiply": calc.Multiply,
	"divide":   calc.Divide,
	"modulo":   calc.Modulo,
}

// calcHandler builds the handler for one arithmetic operation. All five
// share the argument normalization and envelope shape.
func (s *Server) calcHandler(op string) mcp.ToolHandler {
	fn := calcOps[op]
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := parseArgs(req)
		if err != nil {
			return errResult(err.Error()), nil
		}
		a, b, err := params.Pair(args)
		if err != nil {
			msg := err.Error()
			return jsonResult(calc.Result{Operation: op, Error: &msg}), nil
		}
		return jsonResult(fn(a, b)), nil
	}
}
