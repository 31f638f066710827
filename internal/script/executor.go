// Package script executes ad-hoc JavaScript snippets in a goja interpreter
// with an import allow-list, a wall-clock timeout, and JSON-safe output
// capture.
//
// The allow-list is validation, not isolation: scripts run in-process and
// the sandbox makes no stronger guarantee than rejecting disallowed imports.
package script

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dop251/goja"
	"github.com/zeebo/xxh3"
)

// Config holds executor settings.
type Config struct {
	// AllowedModules are the module roots scripts may import or require.
	AllowedModules []string
	// Timeout is the wall-clock limit per script. Zero means 10s.
	Timeout time.Duration
	// ContentsDir receives script.js and result.md dumps per run.
	// Empty disables the dumps.
	ContentsDir string
}

// Executor runs scripts. Safe for concurrent use: every run gets a fresh VM.
type Executor struct {
	allowed     map[string]struct{}
	timeout     time.Duration
	contentsDir string
	logger      *slog.Logger
}

// New creates an Executor from cfg.
func New(cfg Config, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	allowed := make(map[string]struct{}, len(cfg.AllowedModules))
	for _, m := range cfg.AllowedModules {
		allowed[m] = struct{}{}
	}
	return &Executor{
		allowed:     allowed,
		timeout:     timeout,
		contentsDir: cfg.ContentsDir,
		logger:      logger,
	}
}

// Hash returns the xxh3 hash of a script source as a hex string.
func Hash(src string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(src))
}

// Run validates and executes src, returning the captured bindings.
//
// If the script defines `result`, the returned map is {"result": value};
// otherwise it holds every script-created global binding that survives the
// JSON-safety filter. Values that cannot be marshaled are stringified,
// functions and `__`-prefixed names are dropped.
func (e *Executor) Run(ctx context.Context, src string) (map[string]any, error) {
	if err := e.ValidateImports(src); err != nil {
		return nil, err
	}

	e.dump("script.js", []byte(src))

	vm := goja.New()
	installConsoleStub(vm)

	// Everything on the global object before the script runs is interpreter
	// furniture, not script output.
	baseline := map[string]struct{}{}
	for _, k := range vm.GlobalObject().Keys() {
		baseline[k] = struct{}{}
	}

	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	stop := context.AfterFunc(runCtx, func() {
		vm.Interrupt("script timeout")
	})
	defer stop()

	start := time.Now()
	_, err := vm.RunString(src)
	elapsed := time.Since(start)

	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			e.logger.Error("script interrupted", "elapsed", elapsed, "err", err)
			return nil, errors.New("script execution timed out")
		}
		e.logger.Error("script failed", "elapsed", elapsed, "err", err)
		return nil, fmt.Errorf("script execution failed: %s", err.Error())
	}

	out := e.capture(vm, baseline)
	e.logger.Debug("script executed", "elapsed", elapsed, "bindings", len(out))

	if data, err := json.Marshal(out); err == nil {
		e.dump("result.md", data)
	}
	return out, nil
}

// capture extracts the script's output bindings from the VM.
func (e *Executor) capture(vm *goja.Runtime, baseline map[string]struct{}) map[string]any {
	global := vm.GlobalObject()

	if v := global.Get("result"); v != nil && !goja.IsUndefined(v) {
		if _, isFn := goja.AssertFunction(v); isFn {
			return map[string]any{"result": v.String()}
		}
		return map[string]any{"result": jsonSafe(v.Export())}
	}

	out := map[string]any{}
	for _, key := range global.Keys() {
		if _, known := baseline[key]; known {
			continue
		}
		if strings.HasPrefix(key, "__") {
			continue
		}
		v := global.Get(key)
		if v == nil || goja.IsUndefined(v) {
			continue
		}
		if _, isFn := goja.AssertFunction(v); isFn {
			continue
		}
		out[key] = jsonSafe(v.Export())
	}
	return out
}

// jsonSafe returns v when it marshals cleanly, its string form otherwise.
func jsonSafe(v any) any {
	if _, err := json.Marshal(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return v
}

// installConsoleStub silences console output inside scripts.
func installConsoleStub(vm *goja.Runtime) {
	noop := func(goja.FunctionCall) goja.Value { return goja.Undefined() }
	console := vm.NewObject()
	for _, name := range []string{"log", "info", "warn", "error", "debug"} {
		_ = console.Set(name, noop)
	}
	_ = vm.Set("console", console)
	_ = vm.Set("print", noop)
}

// dump best-effort writes a run artifact under the contents directory.
func (e *Executor) dump(name string, data []byte) {
	if e.contentsDir == "" {
		return
	}
	if err := os.MkdirAll(e.contentsDir, 0o755); err != nil {
		e.logger.Warn("contents dir", "err", err)
		return
	}
	path := filepath.Join(e.contentsDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		e.logger.Warn("write run artifact", "path", path, "err", err)
	}
}
