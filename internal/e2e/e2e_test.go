package e2e

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"mathqa/pkg/types"
)

func ask(t *testing.T, base, question string) types.AskResponse {
	t.Helper()
	payload, _ := json.Marshal(map[string]string{"question": question})
	resp, body := httpPostJSON(t, base+"/api/ask", payload, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/api/ask status=%d body=%s", resp.StatusCode, body)
	}
	var out types.AskResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("json: %v body=%s", err, body)
	}
	if (out.Answer == "") == (out.Error == "") {
		t.Fatalf("exactly one of answer/error must be set: %s", body)
	}
	return out
}

func TestE2E_AnswerFlow(t *testing.T) {
	fake := &fakeOllama{body: `{"model":"math:latest","response":"Langkah 1: \\(2+2\\). Jadi jawabannya \\[4\\]","done":true}`}
	srv, _ := newStack(t, fake, 5*time.Second)

	got := ask(t, srv.URL, "Berapakah 2+2?")
	if got.Answer != "4" {
		t.Fatalf("answer=%q error=%q", got.Answer, got.Error)
	}
	req := fake.lastRequest(t)
	if req.Model != "math:latest" || req.Stream {
		t.Fatalf("unexpected request: %+v", req)
	}
	if !strings.HasSuffix(req.Prompt, "\n\nBerapakah 2+2?") {
		t.Fatalf("prompt=%q", req.Prompt)
	}
	if len(req.Options.Stop) != 1 || req.Options.Stop[0] != "</think>" || req.Options.Temperature != 0.2 {
		t.Fatalf("options=%+v", req.Options)
	}
}

func TestE2E_ChatShapedReply(t *testing.T) {
	fake := &fakeOllama{body: `{"message":{"role":"assistant","content":"hasil \\(x=3\\)"},"done":true}`}
	srv, _ := newStack(t, fake, 5*time.Second)
	if got := ask(t, srv.URL, "x?"); got.Answer != "x=3" {
		t.Fatalf("answer=%q error=%q", got.Answer, got.Error)
	}
}

func TestE2E_BackendFailuresAreErrorPayloads(t *testing.T) {
	fake := &fakeOllama{}
	srv, _ := newStack(t, fake, 5*time.Second)

	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"no latex", 200, `{"response":"jawabannya empat","done":true}`, "Respons lengkap: jawabannya empat"},
		{"loaded only", 200, `{"response":"","done":true,"done_reason":"load"}`, "Model dimuat"},
		{"completed empty", 200, `{"response":"","done":true}`, "Model selesai memproses"},
		{"unexpected shape", 200, `{"response":""}`, "format respons tidak terduga"},
		{"malformed", 200, `<html>`, "bukan format JSON"},
		{"http 500", 500, `{"error":"boom"}`, "Terjadi kesalahan saat berkomunikasi dengan Ollama"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fake.set(c.status, c.body)
			got := ask(t, srv.URL, "q")
			if !strings.Contains(got.Error, c.want) {
				t.Fatalf("error=%q, want substring %q", got.Error, c.want)
			}
		})
	}
}

func TestE2E_BackendUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	dead := "http://" + ln.Addr().String()
	_ = ln.Close()

	srv := newServerForBackend(t, dead, 5*time.Second)
	got := ask(t, srv.URL, "q")
	if !strings.Contains(got.Error, "Tidak dapat terhubung") || !strings.Contains(got.Error, dead) {
		t.Fatalf("error=%q", got.Error)
	}
}

func TestE2E_BackendTimeout(t *testing.T) {
	fake := &fakeOllama{delay: 500 * time.Millisecond, body: `{"response":"\\(1\\)","done":true}`}
	srv, _ := newStack(t, fake, 50*time.Millisecond)
	got := ask(t, srv.URL, "q")
	if !strings.Contains(got.Error, "habis waktu") {
		t.Fatalf("error=%q", got.Error)
	}
}

func TestE2E_Readiness(t *testing.T) {
	fake := &fakeOllama{models: []string{"other:7b"}}
	srv, _ := newStack(t, fake, 5*time.Second)

	resp, body := httpGet(t, srv.URL+"/readyz")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("/readyz without model: %d %s", resp.StatusCode, body)
	}
	fake.mu.Lock()
	fake.models = append(fake.models, "math")
	fake.mu.Unlock()
	resp, body = httpGet(t, srv.URL+"/readyz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/readyz with model: %d %s", resp.StatusCode, body)
	}
}

func TestE2E_CORSForFrontendOrigin(t *testing.T) {
	fake := &fakeOllama{body: `{"response":"\\(1\\)","done":true}`}
	srv, _ := newStack(t, fake, 5*time.Second)

	resp, _ := httpPostJSON(t, srv.URL+"/api/ask", []byte(`{"question":"q"}`), map[string]string{"Origin": "http://localhost:5173"})
	if resp.Header.Get("Access-Control-Allow-Origin") != "http://localhost:5173" || resp.Header.Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatalf("cors headers missing: %v", resp.Header)
	}
	resp, _ = httpPostJSON(t, srv.URL+"/api/ask", []byte(`{"question":"q"}`), map[string]string{"Origin": "http://localhost:3000"})
	if resp.Header.Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("unexpected allow-origin for foreign origin: %v", resp.Header)
	}
}

func TestE2E_MetricsExposeOutcomes(t *testing.T) {
	fake := &fakeOllama{body: `{"response":"\\(1\\)","done":true}`}
	srv, _ := newStack(t, fake, 5*time.Second)
	ask(t, srv.URL, "q")

	resp, body := httpGet(t, srv.URL+"/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/metrics %d", resp.StatusCode)
	}
	for _, name := range []string{"mathqa_ask_results_total", "mathqa_backend_request_duration_seconds", "mathqa_http_requests_total"} {
		if !bytes.Contains(body, []byte(name)) {
			t.Fatalf("metrics missing %s", name)
		}
	}
}
