package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mogen/model"
)

func TestGatewayProviderGenerate(t *testing.T) {
	var gotReq model.GenerationRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate" {
			t.Errorf("path = %q, want /generate", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}

		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("0:\"Adding a \"\n"))
		w.Write([]byte("0:\"lower third.\"\n"))
		w.Write([]byte(`9:{"toolCallId":"c1","toolName":"produce-program","args":{"program":"export default () => text('hi');"}}` + "\n"))
	}))
	defer server.Close()

	p, err := NewGatewayProvider(server.URL, "overlay-pro")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := model.GenerationRequest{
		Turns: []model.Turn{{Role: "user", Text: "add a lower third"}},
		Model: "overlay-pro",
	}

	var events []model.StreamEvent
	err = p.Generate(context.Background(), req, func(ev model.StreamEvent) error {
		events = append(events, ev)
		return nil
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if gotReq.Model != "overlay-pro" {
		t.Errorf("request model = %q, want %q", gotReq.Model, "overlay-pro")
	}
	if len(gotReq.Turns) != 1 || gotReq.Turns[0].Text != "add a lower third" {
		t.Errorf("request turns = %+v", gotReq.Turns)
	}

	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d: %+v", len(events), events)
	}
	if events[0].Text+events[1].Text != "Adding a lower third." {
		t.Errorf("text deltas = %q %q", events[0].Text, events[1].Text)
	}
	if events[2].Type != model.EventToolCall || events[2].ToolName != "produce-program" {
		t.Errorf("third event = %+v, want produce-program tool call", events[2])
	}
}

func TestGatewayProviderErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	p, err := NewGatewayProvider(server.URL, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = p.Generate(context.Background(), model.GenerationRequest{}, nil)
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestGatewayProviderPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	p, err := NewGatewayProvider(server.URL, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Ping(context.Background()); err != nil {
		t.Errorf("Ping returned error: %v", err)
	}
}
