package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/devopsnextgenx/mcp-crypto-server/internal/audit"
	"github.com/devopsnextgenx/mcp-crypto-server/internal/script"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	exec := script.New(script.Config{
		AllowedModules: []string{"math", "json", "base64", "crypto"},
		Timeout:        2 * time.Second,
		ContentsDir:    t.TempDir(),
	}, nil)
	return NewServer(Options{Executor: exec})
}

func callTool(t *testing.T, s *Server, handler mcp.ToolHandler, args string) map[string]any {
	t.Helper()
	req := &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Arguments: json.RawMessage(args)},
	}
	res, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected protocol error: %v", res.Content)
	}
	text := res.Content[0].(*mcp.TextContent).Text
	var out map[string]any
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		t.Fatalf("result is not JSON: %v\n%s", err, text)
	}
	return out
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	s := testServer(t)

	out := callTool(t, s, s.handleEncrypt, `{"text": "Hello, World!"}`)
	if out["success"] != true {
		t.Fatalf("encrypt failed: %v", out)
	}
	if out["result"] != "SGVsbG8sIFdvcmxkIQ==" {
		t.Fatalf("encrypt result = %v", out["result"])
	}

	out = callTool(t, s, s.handleDecrypt, `{"encoded_text": "SGVsbG8sIFdvcmxkIQ=="}`)
	if out["success"] != true || out["result"] != "Hello, World!" {
		t.Fatalf("decrypt result = %v", out)
	}
}

func TestEncryptEmptyText(t *testing.T) {
	s := testServer(t)
	for _, args := range []string{`{}`, `{"text": ""}`} {
		out := callTool(t, s, s.handleEncrypt, args)
		if out["success"] != false {
			t.Fatalf("expected failure for %s: %v", args, out)
		}
		if out["error"] != "Input text cannot be empty" {
			t.Fatalf("error = %v", out["error"])
		}
		if out["result"] != nil {
			t.Fatalf("result should be null, got %v", out["result"])
		}
	}
}

func TestDecryptInvalidBase64(t *testing.T) {
	s := testServer(t)
	out := callTool(t, s, s.handleDecrypt, `{"encoded_text": "not base64!!"}`)
	if out["success"] != false || out["error"] != "Invalid base64 format" {
		t.Fatalf("unexpected envelope: %v", out)
	}
}

func TestEncryptWrappedTextShape(t *testing.T) {
	s := testServer(t)
	out := callTool(t, s, s.handleEncrypt, `{"text": {"text": "hi"}}`)
	if out["success"] != true || out["result"] != "aGk=" {
		t.Fatalf("wrapped shape not normalized: %v", out)
	}
}

func TestCalcHandlers(t *testing.T) {
	s := testServer(t)
	tests := []struct {
		op   string
		args string
		want float64
	}{
		{"add", `{"a": 2, "b": 3}`, 5},
		{"subtract", `{"a": 10, "b": 4}`, 6},
		{"multiply", `{"a": 6, "b": 7}`, 42},
		{"divide", `{"a": 10, "b": 4}`, 2.5},
		{"modulo", `{"a": -7, "b": 3}`, 2},
		{"add", `{"params": {"a": "1.5", "b": "2.5"}}`, 4},
		{"multiply", `{"params": [3, 4]}`, 12},
	}
	for _, tt := range tests {
		t.Run(tt.op+"_"+tt.args, func(t *testing.T) {
			out := callTool(t, s, s.calcHandler(tt.op), tt.args)
			if out["success"] != true {
				t.Fatalf("envelope: %v", out)
			}
			if got := out["result"].(float64); got != tt.want {
				t.Fatalf("result = %v, want %v", got, tt.want)
			}
			if out["operation"] != tt.op {
				t.Fatalf("operation = %v", out["operation"])
			}
		})
	}
}

func TestDivideByZero(t *testing.T) {
	s := testServer(t)
	out := callTool(t, s, s.calcHandler("divide"), `{"a": 1, "b": 0}`)
	if out["success"] != false {
		t.Fatalf("expected failure: %v", out)
	}
	if out["error"] != "Division by zero is not allowed" {
		t.Fatalf("error = %v", out["error"])
	}
	if out["result"] != nil {
		t.Fatalf("result should be null: %v", out["result"])
	}
}

func TestCalcNonFiniteOperand(t *testing.T) {
	s := testServer(t)
	for _, args := range []string{
		`{"a": "NaN", "b": "3"}`,
		`{"a": 1, "b": "Infinity"}`,
	} {
		out := callTool(t, s, s.calcHandler("add"), args)
		if out["success"] != false {
			t.Fatalf("expected envelope failure for %s: %v", args, out)
		}
		if !strings.Contains(out["error"].(string), "finite") {
			t.Fatalf("error = %v", out["error"])
		}
	}
}

func TestCalcMissingOperands(t *testing.T) {
	s := testServer(t)
	out := callTool(t, s, s.calcHandler("add"), `{"a": 1}`)
	if out["success"] != false {
		t.Fatalf("expected failure: %v", out)
	}
	if !strings.Contains(out["error"].(string), "'a' and 'b'") {
		t.Fatalf("error = %v", out["error"])
	}
}

func TestExecuteScript(t *testing.T) {
	s := testServer(t)
	out := callTool(t, s, s.handleExecuteScript, `{"script": "var result = 6 * 7;"}`)
	if out["success"] != true {
		t.Fatalf("envelope: %v", out)
	}
	res := out["result"].(map[string]any)
	if res["result"].(float64) != 42 {
		t.Fatalf("result = %v", res)
	}
}

func TestExecuteScriptDisallowedImport(t *testing.T) {
	s := testServer(t)
	out := callTool(t, s, s.handleExecuteScript, `{"script": "import fs from \"fs\";"}`)
	if out["success"] != false {
		t.Fatalf("expected failure: %v", out)
	}
	if !strings.Contains(out["error"].(string), "not allowed") {
		t.Fatalf("error = %v", out["error"])
	}
}

func TestExecuteScriptEmpty(t *testing.T) {
	s := testServer(t)
	out := callTool(t, s, s.handleExecuteScript, `{}`)
	if out["success"] != false || out["error"] != "Script cannot be empty" {
		t.Fatalf("envelope: %v", out)
	}
}

func TestListToolsDetailed(t *testing.T) {
	s := testServer(t)
	out := callTool(t, s, s.handleListTools, `{}`)
	if out["success"] != true {
		t.Fatalf("envelope: %v", out)
	}
	if int(out["count"].(float64)) != 9 {
		t.Fatalf("count = %v", out["count"])
	}
	tools := out["tools"].([]any)
	first := tools[0].(map[string]any)
	if _, ok := first["parameters"]; !ok {
		t.Fatal("detailed listing should carry parameters")
	}
}

func TestListToolsSummary(t *testing.T) {
	s := testServer(t)
	out := callTool(t, s, s.handleListTools, `{"detailed": false}`)
	tools := out["tools"].([]any)
	first := tools[0].(map[string]any)
	if _, ok := first["parameters"]; ok {
		t.Fatal("summary listing should not carry full parameters")
	}
	if _, ok := first["parameters_summary"]; !ok {
		t.Fatal("summary listing should carry parameters_summary")
	}
}

func TestWrapRecordsAudit(t *testing.T) {
	store, err := audit.OpenMemory()
	if err != nil {
		t.Fatalf("open audit store: %v", err)
	}
	defer store.Close()

	exec := script.New(script.Config{Timeout: time.Second, ContentsDir: t.TempDir()}, nil)
	s := NewServer(Options{Executor: exec, Audit: store})

	wrapped := s.wrap("encrypt", s.handleEncrypt)
	req := &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Arguments: json.RawMessage(`{"text": "hi"}`)},
	}
	if _, err := wrapped(context.Background(), req); err != nil {
		t.Fatalf("wrapped handler: %v", err)
	}

	recent, err := store.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 invocation, got %d", len(recent))
	}
	inv := recent[0]
	if inv.Tool != "encrypt" || !inv.Success {
		t.Fatalf("invocation = %+v", inv)
	}
}

func TestWrapMarksEnvelopeFailure(t *testing.T) {
	store, err := audit.OpenMemory()
	if err != nil {
		t.Fatalf("open audit store: %v", err)
	}
	defer store.Close()

	s := NewServer(Options{Audit: store})
	wrapped := s.wrap("divide", s.calcHandler("divide"))
	req := &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Arguments: json.RawMessage(`{"a": 1, "b": 0}`)},
	}
	res, err := wrapped(context.Background(), req)
	if err != nil {
		t.Fatalf("wrapped handler: %v", err)
	}
	if res.IsError {
		t.Fatal("domain failures should not set IsError")
	}

	recent, err := store.Recent(1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if recent[0].Success {
		t.Fatal("audit should record envelope failure")
	}
}

func TestScriptCallRecordsHash(t *testing.T) {
	store, err := audit.OpenMemory()
	if err != nil {
		t.Fatalf("open audit store: %v", err)
	}
	defer store.Close()

	exec := script.New(script.Config{Timeout: time.Second, ContentsDir: t.TempDir()}, nil)
	s := NewServer(Options{Executor: exec, Audit: store})

	src := `var result = 1;`
	wrapped := s.wrap("executeScript", s.handleExecuteScript)
	args, _ := json.Marshal(map[string]any{"script": src})
	req := &mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{Arguments: args}}
	if _, err := wrapped(context.Background(), req); err != nil {
		t.Fatalf("wrapped handler: %v", err)
	}

	recent, _ := store.Recent(1)
	if recent[0].ScriptHash != script.Hash(src) {
		t.Fatalf("script hash = %q, want %q", recent[0].ScriptHash, script.Hash(src))
	}
}
