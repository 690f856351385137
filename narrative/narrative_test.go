// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/saisaranya2005/SmartLabAI/lab"
)

func testRequest() Request {
	return Request{
		Panel:  lab.PanelCBC,
		Gender: "Male",
		Age:    45,
		Results: []lab.Result{
			{Parameter: "Hemoglobin", RawValue: 11.2, Unit: "g/dL", RangeText: "13.0-18.0 g/dL", Verdict: lab.VerdictLow},
		},
	}
}

func TestAnalyzeReturnsCompletion(t *testing.T) {
	t.Parallel()

	var got chatRequest
	var auth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ABNORMAL FINDINGS:\nLow hemoglobin"}}]}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "secret"})

	n := client.Analyze(context.Background(), testRequest())
	if n.Unavailable {
		t.Fatalf("unexpected placeholder: %q", n.Text)
	}
	if n.Text != "ABNORMAL FINDINGS:\nLow hemoglobin" {
		t.Fatalf("unexpected narrative text: %q", n.Text)
	}

	if auth != "Bearer secret" {
		t.Fatalf("Authorization header = %q", auth)
	}
	if got.Model != DefaultModel || got.Stream {
		t.Fatalf("unexpected request: model=%q stream=%v", got.Model, got.Stream)
	}
	if len(got.Messages) != 2 || !strings.Contains(got.Messages[1].Content, "45-year-old male patient") {
		t.Fatalf("unexpected prompt messages: %+v", got.Messages)
	}
}

func TestAnalyzePlaceholderOnFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	tests := map[string]*Client{
		"missing key":  NewClient(Config{BaseURL: server.URL}),
		"http failure": NewClient(Config{BaseURL: server.URL, APIKey: "secret"}),
	}

	for name, client := range tests {
		n := client.Analyze(context.Background(), testRequest())
		if !n.Unavailable {
			t.Fatalf("%s: expected placeholder narrative", name)
		}
		if !strings.HasPrefix(n.Text, PlaceholderPrefix) {
			t.Fatalf("%s: placeholder text = %q", name, n.Text)
		}
	}
}

func TestAnalyzeAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[],"error":{"message":"model overloaded"}}`))
	}))
	defer server.Close()

	n := NewClient(Config{BaseURL: server.URL, APIKey: "secret"}).Analyze(context.Background(), testRequest())
	if !n.Unavailable || !strings.Contains(n.Text, "model overloaded") {
		t.Fatalf("expected API error in placeholder, got %+v", n)
	}
}

func TestStreamAnswer(t *testing.T) {
	t.Parallel()

	var got chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)

		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"Iron \"}}]}\n\n"))
		_, _ = w.Write([]byte("data: not-json\n\n"))
		_, _ = w.Write([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"deficiency\"}}]}\n\n"))
		_, _ = w.Write([]byte("data: [DONE]\n"))
		_, _ = w.Write([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"ignored\"}}]}\n"))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "secret"})

	var streamed string
	err := client.StreamAnswer(context.Background(), testRequest(), "What causes low hemoglobin?", func(chunk string) error {
		streamed += chunk
		return nil
	})
	if err != nil {
		t.Fatalf("StreamAnswer failed: %v", err)
	}

	if streamed != "Iron deficiency" {
		t.Fatalf("unexpected streamed output %q", streamed)
	}

	if !got.Stream || !strings.Contains(got.Messages[1].Content, "Answer this specific question directly and professionally: What causes low hemoglobin?") {
		t.Fatalf("unexpected question request: %+v", got)
	}
}

func TestStreamAnswerStopsOnCallbackError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"a\"}}]}\n"))
		_, _ = w.Write([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"b\"}}]}\n"))
	}))
	defer server.Close()

	stop := errors.New("client went away")
	calls := 0

	err := NewClient(Config{BaseURL: server.URL, APIKey: "secret"}).StreamAnswer(context.Background(), testRequest(), "q", func(string) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected streaming to stop after first chunk, got %d calls", calls)
	}
}

func TestBuildAnalysisPromptListsAllHeaders(t *testing.T) {
	t.Parallel()

	req := testRequest()
	req.Panel = lab.PanelLFT
	prompt := buildAnalysisPrompt(req)

	if !strings.HasPrefix(prompt, "Analyze LFT results for 45-year-old male patient.") {
		t.Fatalf("unexpected prompt start: %q", prompt[:60])
	}

	for _, header := range Headers {
		if !strings.Contains(prompt, header+":\n[") {
			t.Fatalf("prompt misses header %q", header)
		}
	}

	if !strings.Contains(prompt, `"Reference Range": "13.0-18.0 g/dL"`) {
		t.Fatalf("prompt misses results json:\n%s", prompt)
	}
}
