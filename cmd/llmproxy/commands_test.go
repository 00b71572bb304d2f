package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dukegpt/llmproxy/internal/config"
)

var ctx = context.Background()

// clearConfigEnv blanks every recognized env var so tests run on defaults.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"PORT", "DUKE_API_URL", "DUKE_API_KEY", "LOG_LEVEL"} {
		t.Setenv(name, "")
	}
}

// stubRelay points newRelayClient at the given server for the duration of
// the test.
func stubRelay(t *testing.T, ts *httptest.Server) {
	t.Helper()
	old := newRelayClient
	t.Cleanup(func() { newRelayClient = old })

	newRelayClient = func(cfg config.Config) *relayClient {
		return &relayClient{
			baseURL:    ts.URL,
			httpClient: ts.Client(),
		}
	}
}

func newStockServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		w.Write([]byte("404 page not found\n"))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestRelayPing_Running(t *testing.T) {
	ts := newStockServer(t)

	client := &relayClient{baseURL: ts.URL, httpClient: ts.Client()}
	if err := client.ping(ctx); err != nil {
		t.Errorf("ping against a live relay returned error: %v", err)
	}
}

func TestRelayPing_Stopped(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	client := &relayClient{baseURL: ts.URL, httpClient: &http.Client{}}
	err := client.ping(ctx)
	if err == nil {
		t.Fatal("expected error for stopped relay")
	}
	if !strings.Contains(err.Error(), "not reachable") {
		t.Errorf("error = %q, want it to mention 'not reachable'", err.Error())
	}
}

func TestPingUpstream_AnyStatusCounts(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		w.Write([]byte(`{"error":"unauthorized"}`))
	}))
	defer ts.Close()

	if err := pingUpstream(ctx, ts.URL); err != nil {
		t.Errorf("pingUpstream returned error for a responding endpoint: %v", err)
	}
}

func TestPingUpstream_SendsNoCredential(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(401)
	}))
	defer ts.Close()

	if err := pingUpstream(ctx, ts.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestPingUpstream_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	if err := pingUpstream(ctx, ts.URL); err == nil {
		t.Fatal("expected error for unreachable upstream")
	}
}

func TestShowStatus_Running(t *testing.T) {
	clearConfigEnv(t)
	stubRelay(t, newStockServer(t))

	if err := showStatus(); err != nil {
		t.Errorf("showStatus returned error: %v", err)
	}
}

func TestShowStatus_Stopped(t *testing.T) {
	clearConfigEnv(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()
	stubRelay(t, ts)

	// A stopped relay is a report, not a failure.
	if err := showStatus(); err != nil {
		t.Errorf("showStatus returned error: %v", err)
	}
}

func TestRunCheck_BothUp(t *testing.T) {
	clearConfigEnv(t)

	ts := newStockServer(t)
	stubRelay(t, ts)
	t.Setenv("DUKE_API_URL", ts.URL)

	if err := runCheck(); err != nil {
		t.Errorf("runCheck returned error with both endpoints up: %v", err)
	}
}

func TestRunCheck_UpstreamDown(t *testing.T) {
	clearConfigEnv(t)

	stubRelay(t, newStockServer(t))

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	down.Close()
	t.Setenv("DUKE_API_URL", down.URL)

	err := runCheck()
	if err == nil {
		t.Fatal("expected error with upstream down")
	}
	if !strings.Contains(err.Error(), "check failed") {
		t.Errorf("error = %q, want it to mention 'check failed'", err.Error())
	}
}

func TestRunCheck_RelayDown(t *testing.T) {
	clearConfigEnv(t)

	ts := newStockServer(t)
	t.Setenv("DUKE_API_URL", ts.URL)

	stopped := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	stopped.Close()
	stubRelay(t, stopped)

	if err := runCheck(); err == nil {
		t.Fatal("expected error with relay down")
	}
}

func TestConfigShowCommand(t *testing.T) {
	clearConfigEnv(t)
	defer rootCmd.SetArgs(nil)

	rootCmd.SetArgs([]string{"config", "show"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config show failed: %v", err)
	}
}

func TestConfigShowAll(t *testing.T) {
	cfg := config.Config{}
	cfg.Server.Port = 4000
	cfg.Upstream.APIKey = "sk-should-not-appear"

	keys := config.ShowAll(cfg)
	if len(keys) == 0 {
		t.Fatal("expected non-empty keys from ShowAll")
	}

	found := false
	for _, k := range keys {
		if k.Key == "server.port" && k.Value == "4000" {
			found = true
		}
		if k.Value == "sk-should-not-appear" {
			t.Error("ShowAll exposed the upstream key")
		}
	}
	if !found {
		t.Error("expected to find server.port=4000 in ShowAll output")
	}
}

func TestNoColorFlag(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()

	noColor = true
	result := colorize(colorGreen, "test message")
	if strings.Contains(result, "\033[") {
		t.Errorf("colorize with noColor=true should not contain ANSI codes, got %q", result)
	}
	if result != "test message" {
		t.Errorf("result = %q, want %q", result, "test message")
	}

	noColor = false
	result = colorize(colorGreen, "test message")
	if !strings.Contains(result, "\033[") {
		t.Errorf("colorize with noColor=false should contain ANSI codes, got %q", result)
	}
}
