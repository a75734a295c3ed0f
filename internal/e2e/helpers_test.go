package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"mathqa/internal/answer"
	"mathqa/internal/config"
	"mathqa/internal/httpapi"
	"mathqa/internal/ollama"
)

// fakeOllama mimics the subset of the Ollama HTTP API the service uses.
type fakeOllama struct {
	mu       sync.Mutex
	status   int
	body     string
	delay    time.Duration
	models   []string
	requests []ollama.GenerateRequest
}

func (f *fakeOllama) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/":
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "Ollama is running")
	case "/api/tags":
		type model struct {
			Name  string `json:"name"`
			Model string `json:"model"`
		}
		var list struct {
			Models []model `json:"models"`
		}
		f.mu.Lock()
		for _, m := range f.models {
			list.Models = append(list.Models, model{Name: m, Model: m})
		}
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	case "/api/generate":
		var req ollama.GenerateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.requests = append(f.requests, req)
		status, body, delay := f.status, f.body, f.delay
		f.mu.Unlock()
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeOllama) set(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.body = status, body
}

func (f *fakeOllama) lastRequest(t *testing.T) ollama.GenerateRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		t.Fatal("backend received no generate request")
	}
	return f.requests[len(f.requests)-1]
}

// newStack starts a fake backend and the full HTTP API in front of it.
func newStack(t *testing.T, fake *fakeOllama, timeout time.Duration) (*httptest.Server, *httptest.Server) {
	t.Helper()
	backend := httptest.NewServer(fake)
	t.Cleanup(backend.Close)
	return newServerForBackend(t, backend.URL, timeout), backend
}

func newServerForBackend(t *testing.T, backendURL string, timeout time.Duration) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.BackendURL = backendURL
	cfg.ModelName = "math:latest"
	client, err := ollama.NewClient(cfg.BackendURL, timeout)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	svc := answer.New(client, answer.SettingsFrom(cfg), zerolog.Nop())
	httpapi.SetCORSOptions([]string{cfg.AllowedOrigin}, nil, nil)
	srv := httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(srv.Close)
	return srv
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte, headers map[string]string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}
