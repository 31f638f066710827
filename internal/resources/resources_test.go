package resources

import (
	"testing"
	"time"

	"github.com/devopsnextgenx/mcp-crypto-server/internal/registry"
)

func TestVersion(t *testing.T) {
	v := Version()
	if v.ServerName != "MCP Crypto Server" {
		t.Errorf("server_name = %q", v.ServerName)
	}
	if v.Version != "0.1.0" {
		t.Errorf("version = %q", v.Version)
	}
	if v.MCPVersion != "1.0" {
		t.Errorf("mcp_version = %q", v.MCPVersion)
	}
	if len(v.Capabilities) == 0 {
		t.Error("capabilities should not be empty")
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{3*time.Minute + 4*time.Second, "3m 4s"},
		{2*time.Hour + 3*time.Minute + 4*time.Second, "2h 3m 4s"},
		{26*time.Hour + 3*time.Minute + 4*time.Second, "1d 2h 3m 4s"},
		{-time.Second, "0s"},
	}
	for _, tt := range tests {
		if got := FormatUptime(tt.d); got != tt.want {
			t.Errorf("FormatUptime(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestSnapshot(t *testing.T) {
	reg := registry.New()
	for _, tool := range registry.BuiltinCatalog() {
		reg.Register(tool)
	}
	p := NewStatusProvider(reg, nil)

	st := p.Snapshot()
	if st.Status != "running" {
		t.Errorf("status = %q", st.Status)
	}
	if st.PID <= 0 {
		t.Errorf("pid = %d", st.PID)
	}
	if st.UptimeSeconds < 0 {
		t.Errorf("uptime_seconds = %f", st.UptimeSeconds)
	}
	if len(st.Tools) != reg.Len() {
		t.Errorf("tools = %d, want %d", len(st.Tools), reg.Len())
	}
	if len(st.Resources) != 3 {
		t.Errorf("resources = %v", st.Resources)
	}
	if st.Invocations != nil {
		t.Error("invocations should be nil without an audit store")
	}
	if st.Goroutines <= 0 {
		t.Errorf("goroutines = %d", st.Goroutines)
	}
}
