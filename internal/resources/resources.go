// Package resources builds the payloads served as MCP resources: server
// version metadata, a live status snapshot, and the tool listing.
package resources

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/devopsnextgenx/mcp-crypto-server/internal/audit"
	"github.com/devopsnextgenx/mcp-crypto-server/internal/registry"
)

// ServerName and ServerVersion identify this server in resource payloads
// and in the MCP handshake.
const (
	ServerName    = "MCP Crypto Server"
	ServerVersion = "0.1.0"
	MCPVersion    = "1.0"
)

// URIs of the resources the server exposes.
const (
	VersionURI   = "resource://mcp/version"
	StatusURI    = "resource://mcp/status"
	ToolsListURI = "resource://mcp/tools/list"
)

// VersionInfo is the payload of resource://mcp/version.
type VersionInfo struct {
	ServerName   string   `json:"server_name"`
	Version      string   `json:"version"`
	MCPVersion   string   `json:"mcp_version"`
	Description  string   `json:"description"`
	Capabilities []string `json:"capabilities"`
}

// Version returns the static version payload.
func Version() VersionInfo {
	return VersionInfo{
		ServerName:  ServerName,
		Version:     ServerVersion,
		MCPVersion:  MCPVersion,
		Description: "MCP server for base64 encryption, arithmetic, and sandboxed script execution",
		Capabilities: []string{
			"tools",
			"resources",
			"base64-encryption",
			"calculator",
			"script-execution",
		},
	}
}

// Status is the payload of resource://mcp/status.
type Status struct {
	ServerName    string       `json:"server_name"`
	Status        string       `json:"status"`
	Timestamp     string       `json:"timestamp"`
	StartedAt     string       `json:"started_at"`
	PID           int          `json:"pid"`
	UptimeSeconds float64      `json:"uptime_seconds"`
	Uptime        string       `json:"uptime"`
	MemoryAllocMB float64      `json:"memory_alloc_mb"`
	MemorySysMB   float64      `json:"memory_sys_mb"`
	Goroutines    int          `json:"goroutines"`
	Tools         []string     `json:"tools"`
	Resources     []string     `json:"resources"`
	Invocations   *audit.Stats `json:"invocations,omitempty"`
}

// StatusProvider produces Status snapshots for a running server.
type StatusProvider struct {
	start    time.Time
	registry *registry.Registry
	audit    *audit.Store
}

// NewStatusProvider records the server start time. audit may be nil.
func NewStatusProvider(reg *registry.Registry, store *audit.Store) *StatusProvider {
	return &StatusProvider{start: time.Now(), registry: reg, audit: store}
}

// Snapshot builds the current status payload.
func (p *StatusProvider) Snapshot() Status {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	uptime := time.Since(p.start)
	st := Status{
		ServerName:    ServerName,
		Status:        "running",
		Timestamp:     time.Now().Format(time.RFC3339),
		StartedAt:     p.start.Format(time.RFC3339),
		PID:           os.Getpid(),
		UptimeSeconds: uptime.Seconds(),
		Uptime:        FormatUptime(uptime),
		MemoryAllocMB: float64(mem.Alloc) / (1 << 20),
		MemorySysMB:   float64(mem.Sys) / (1 << 20),
		Goroutines:    runtime.NumGoroutine(),
		Tools:         p.registry.Names(),
		Resources:     []string{VersionURI, StatusURI, ToolsListURI},
	}
	if p.audit != nil {
		if stats, err := p.audit.Stats(); err == nil {
			st.Invocations = stats
		}
	}
	return st
}

// FormatUptime renders a duration as "1d 2h 3m 4s", dropping leading zero
// units but always keeping the seconds.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Seconds())
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
