package tools

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPTestRoutes(t *testing.T) {
	s := testServer(t)
	ts := httptest.NewServer(s.HTTPHandler())
	defer ts.Close()

	t.Run("landing", func(t *testing.T) {
		res, err := http.Get(ts.URL + "/")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", res.StatusCode)
		}
		if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Fatalf("content-type = %s", ct)
		}
	})

	t.Run("health", func(t *testing.T) {
		res, err := http.Get(ts.URL + "/test/health")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		defer res.Body.Close()
		var body map[string]any
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["status"] != "healthy" {
			t.Fatalf("body = %v", body)
		}
	})

	t.Run("tools", func(t *testing.T) {
		res, err := http.Get(ts.URL + "/test/tools")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		defer res.Body.Close()
		var body map[string]any
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if int(body["count"].(float64)) != 9 {
			t.Fatalf("count = %v", body["count"])
		}
	})

	t.Run("resources", func(t *testing.T) {
		res, err := http.Get(ts.URL + "/test/resources")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		defer res.Body.Close()
		var body struct {
			Version struct {
				ServerName string `json:"server_name"`
			} `json:"version"`
			Status struct {
				Status string `json:"status"`
			} `json:"status"`
		}
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Version.ServerName != "MCP Crypto Server" || body.Status.Status != "running" {
			t.Fatalf("body = %+v", body)
		}
	})

	t.Run("unknown path", func(t *testing.T) {
		res, err := http.Get(ts.URL + "/nope")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d", res.StatusCode)
		}
	})

	t.Run("metrics", func(t *testing.T) {
		res, err := http.Get(ts.URL + "/metrics")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", res.StatusCode)
		}
	})
}
