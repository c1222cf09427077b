package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/njchilds90/gocas"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	eng, err := gocas.New(gocas.DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(newHandler(eng, log))
	t.Cleanup(srv.Close)
	return srv
}

func postTool(t *testing.T, srv *httptest.Server, body string) (*http.Response, gocas.ToolResponse) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/tool", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /tool: %v", err)
	}
	defer resp.Body.Close()
	var out gocas.ToolResponse
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return resp, out
}

// ============================================================
// /tool
// ============================================================

func TestToolSimplify(t *testing.T) {
	srv := newTestServer(t)
	resp, out := postTool(t, srv, `{"tool":"simplify","params":{"expr":"(+ (Sym x) (Sym x))"}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	if out.Error != "" {
		t.Fatalf("unexpected error: %s", out.Error)
	}
	if out.String != "2*x" {
		t.Errorf("want 2*x, got %q", out.String)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("want X-Request-Id header")
	}
}

func TestToolEngineErrorIsReported(t *testing.T) {
	srv := newTestServer(t)
	_, out := postTool(t, srv, `{"tool":"integrate","params":{"expr":"(Fn ln (Fn ln (Sym x)))","var":"x"}}`)
	if out.Code != gocas.KindNonElementaryIntegral {
		t.Errorf("want code %s, got %q (%s)", gocas.KindNonElementaryIntegral, out.Code, out.Error)
	}
}

func TestToolRejectsBadRequests(t *testing.T) {
	srv := newTestServer(t)
	cases := map[string]string{
		"unknown field": `{"tool":"simplify","params":{},"extra":1}`,
		"trailing data": `{"tool":"simplify","params":{}} {}`,
		"not json":      `simplify x`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp, _ := postTool(t, srv, body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("want 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestToolMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/tool")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("want 405, got %d", resp.StatusCode)
	}
}

// ============================================================
// /schema and /health
// ============================================================

func TestSchemaAndHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/schema")
	if err != nil {
		t.Fatal(err)
	}
	var schema struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	err = json.NewDecoder(resp.Body).Decode(&schema)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("decode schema: %v", err)
	}
	if len(schema.Tools) == 0 {
		t.Error("want tools in schema")
	}

	resp, err = http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	var health map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&health)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health["status"] != "ok" {
		t.Errorf("want status ok, got %v", health["status"])
	}
}

// ============================================================
// Configuration
// ============================================================

func TestServerConfigFormatsAgree(t *testing.T) {
	tomlDoc := `
addr = ":9000"
read_timeout = "3s"

[log]
level = "debug"

[engine]
max_degree = 8
complex_roots = "pairs"
`
	yamlDoc := `
addr: ":9000"
read_timeout: 3s
log:
  level: debug
engine:
  max_degree: 8
  complex_roots: pairs
`
	fromTOML, err := parseServerConfig([]byte(tomlDoc), gocas.FormatTOML)
	if err != nil {
		t.Fatalf("toml: %v", err)
	}
	fromYAML, err := parseServerConfig([]byte(yamlDoc), gocas.FormatYAML)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if diff := cmp.Diff(fromTOML, fromYAML); diff != "" {
		t.Errorf("TOML and YAML disagree (-toml +yaml):\n%s", diff)
	}
	if fromTOML.ReadTimeout.Duration != 3*time.Second {
		t.Errorf("want 3s, got %v", fromTOML.ReadTimeout.Duration)
	}
	if fromTOML.WriteTimeout.Duration != 15*time.Second {
		t.Errorf("want default 15s write timeout, got %v", fromTOML.WriteTimeout.Duration)
	}
	if fromTOML.Engine.MaxPasses != gocas.DefaultConfig().MaxPasses {
		t.Errorf("want default max_passes, got %d", fromTOML.Engine.MaxPasses)
	}
}

func TestServerConfigRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"log level":   "[log]\nlevel = \"loud\"\n",
		"engine":      "[engine]\nmax_passes = 0\n",
		"empty addr":  "addr = \"\"\n",
		"bad syntax":  "addr = \n",
		"bad timeout": "read_timeout = \"soon\"\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := parseServerConfig([]byte(doc), gocas.FormatTOML); err == nil {
				t.Error("want error, got nil")
			}
		})
	}
}
