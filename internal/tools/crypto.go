package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/devopsnextgenx/mcp-crypto-server/internal/codec"
	"github.com/devopsnextgenx/mcp-crypto-server/internal/params"
)

// CryptoResult is the envelope returned by the encrypt and decrypt tools.
type CryptoResult struct {
	Success bool    `json:"success"`
	Error   *string `json:"error"`
	Result  *string `json:"result"`
}

func cryptoOK(result string) CryptoResult {
	return CryptoResult{Success: true, Result: &result}
}

func cryptoFail(msg string) CryptoResult {
	return CryptoResult{Error: &msg}
}

func (s *Server) handleEncrypt(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	text, ok := params.Text(args, "text")
	if !ok || text == "" {
		return jsonResult(cryptoFail("Input text cannot be empty")), nil
	}
	return jsonResult(cryptoOK(codec.Encode(text))), nil
}

func (s *Server) handleDecrypt(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	text, ok := params.Text(args, "encoded_text")
	if !ok || text == "" {
		return jsonResult(cryptoFail("Input encoded text cannot be empty")), nil
	}
	decoded, err := codec.Decode(text)
	if err != nil {
		return jsonResult(cryptoFail("Invalid base64 format")), nil
	}
	return jsonResult(cryptoOK(decoded)), nil
}
