package eval

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"prism/internal/provider"
)

func newTestEngine(clients map[string]provider.Client, opts EngineOptions) *Engine {
	log := discardLogger()
	return NewEngine(NewDispatcher(testRegistry(clients), log), log, opts)
}

func baseRequest(models ...string) Request {
	return Request{
		Prompt:          "say something",
		Models:          models,
		MaxTokens:       128,
		TimeoutS:        2,
		SynthesisMethod: MethodLongestNonEmpty,
	}
}

func TestEvaluateFullAgreement(t *testing.T) {
	engine := newTestEngine(map[string]provider.Client{
		"m1": staticClient{text: "hello world"},
		"m2": staticClient{text: "hello world"},
	}, EngineOptions{})

	resp, err := engine.Evaluate(context.Background(), baseRequest("m1", "m2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if resp.Compare.Summary.AgreementRatio != 1.0 {
		t.Errorf("agreement_ratio = %v, want 1.0", resp.Compare.Summary.AgreementRatio)
	}
	if resp.Compare.Summary.UniqueResponses != 1 {
		t.Errorf("unique_responses = %d, want 1", resp.Compare.Summary.UniqueResponses)
	}
	if len(resp.Compare.Pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(resp.Compare.Pairs))
	}
	p := resp.Compare.Pairs[0]
	if p.TokenOverlapJaccard != 1.0 || p.LengthRatio != 1.0 {
		t.Errorf("pair = %+v, want jaccard 1.0 and length_ratio 1.0", p)
	}
	if resp.Status != RunStatusSuccess {
		t.Errorf("status = %s, want %s", resp.Status, RunStatusSuccess)
	}
}

func TestEvaluatePartialTimeout(t *testing.T) {
	engine := newTestEngine(map[string]provider.Client{
		"x": staticClient{text: "a b c d"},
		"y": slowClient{delay: 5 * time.Second, text: "too late"},
	}, EngineOptions{})

	// The lone success must win under every method.
	for _, method := range []Method{MethodLongestNonEmpty, MethodConsensusOverlap, MethodBestOfN} {
		t.Run(string(method), func(t *testing.T) {
			req := baseRequest("x", "y")
			req.TimeoutS = 0.05
			req.SynthesisMethod = method
			resp, err := engine.Evaluate(context.Background(), req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(resp.Results) != 2 {
				t.Fatalf("expected 2 results, got %d", len(resp.Results))
			}
			if resp.Results[0].Status != StatusSuccess || resp.Results[1].Status != StatusTimeout {
				t.Errorf("statuses = [%s, %s], want [success, timeout]", resp.Results[0].Status, resp.Results[1].Status)
			}
			if len(resp.Compare.Pairs) != 0 {
				t.Errorf("expected no pairs with a single success, got %d", len(resp.Compare.Pairs))
			}
			if !resp.Synthesis.OK || resp.Synthesis.Text == nil || *resp.Synthesis.Text != "a b c d" {
				t.Errorf("synthesis should select the only success: %+v", resp.Synthesis)
			}
			if resp.Status != RunStatusPartial {
				t.Errorf("status = %s, want %s", resp.Status, RunStatusPartial)
			}
		})
	}
}

func TestEvaluateLongestSelection(t *testing.T) {
	engine := newTestEngine(map[string]provider.Client{
		"m1": staticClient{text: "a b"},
		"m2": staticClient{text: "a b c"},
		"m3": staticClient{text: "x y z"},
	}, EngineOptions{})

	resp, err := engine.Evaluate(context.Background(), baseRequest("m1", "m2", "m3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Synthesis.Text == nil || *resp.Synthesis.Text != "a b c" {
		t.Errorf("synthesis text = %v, want %q", resp.Synthesis.Text, "a b c")
	}
}

func TestEvaluateAllFailed(t *testing.T) {
	engine := newTestEngine(map[string]provider.Client{
		"m1": staticClient{err: errors.New("backend down")},
		"m2": staticClient{err: errors.New("backend down")},
	}, EngineOptions{})

	resp, err := engine.Evaluate(context.Background(), baseRequest("m1", "m2"))
	if err != nil {
		t.Fatalf("all-failed runs are data, not errors: %v", err)
	}
	for _, r := range resp.Results {
		if r.Status != StatusError || r.ErrorCode != CodeProviderError {
			t.Errorf("model %s: got status=%s code=%s", r.Model, r.Status, r.ErrorCode)
		}
	}
	if resp.Synthesis.OK {
		t.Error("synthesis.ok = true, want false")
	}
	if resp.Synthesis.Text != nil {
		t.Errorf("synthesis.text = %q, want nil", *resp.Synthesis.Text)
	}
	if resp.Compare.Summary.Notes != NoteInsufficientResults {
		t.Errorf("notes = %q, want %q", resp.Compare.Summary.Notes, NoteInsufficientResults)
	}
	if resp.Status != RunStatusFailed {
		t.Errorf("status = %s, want %s", resp.Status, RunStatusFailed)
	}
}

func TestEvaluateInvalidRequests(t *testing.T) {
	engine := newTestEngine(map[string]provider.Client{
		"m1": staticClient{text: "hi"},
	}, EngineOptions{MaxModels: 2, MaxPromptChars: 50})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty prompt", func(r *Request) { r.Prompt = "   " }},
		{"prompt too long", func(r *Request) { r.Prompt = strings.Repeat("a", 51) }},
		{"no models", func(r *Request) { r.Models = nil }},
		{"too many models", func(r *Request) { r.Models = []string{"a", "b", "c"} }},
		{"duplicate models", func(r *Request) { r.Models = []string{"m1", "m1"} }},
		{"empty model id", func(r *Request) { r.Models = []string{""} }},
		{"unknown method", func(r *Request) { r.SynthesisMethod = "majority_vote" }},
		{"non-positive timeout", func(r *Request) { r.TimeoutS = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest("m1")
			tt.mutate(&req)
			resp, err := engine.Evaluate(context.Background(), req)
			if !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("err = %v, want ErrInvalidRequest", err)
			}
			if resp != nil {
				t.Errorf("response should be nil on validation failure")
			}
		})
	}
}

func TestEvaluateEchoesParams(t *testing.T) {
	engine := newTestEngine(map[string]provider.Client{
		"m1": staticClient{text: "answer"},
	}, EngineOptions{})

	req := Request{
		Prompt:          "  Trim Me  ",
		Models:          []string{"m1"},
		Temperature:     0.7,
		MaxTokens:       64,
		TimeoutS:        3,
		SynthesisMethod: MethodBestOfN,
	}
	resp, err := engine.Evaluate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Prompt != "Trim Me" {
		t.Errorf("prompt = %q, want trimmed form", resp.Prompt)
	}
	if resp.RequestID == "" {
		t.Error("request_id must be set")
	}
	if resp.CreatedAt.IsZero() {
		t.Error("created_at must be set")
	}
	if resp.RunHash == "" {
		t.Error("run_hash must be set")
	}
	p := resp.Params
	if p.Temperature != 0.7 || p.MaxTokens != 64 || p.TimeoutS != 3 || p.SynthesisMethod != MethodBestOfN {
		t.Errorf("params not echoed: %+v", p)
	}
	if resp.Results[0].Meta == nil {
		t.Fatal("successful results should carry meta annotations")
	}
	if _, ok := resp.Results[0].Meta["hedge_count"]; !ok {
		t.Error("meta missing hedge_count")
	}
	if _, ok := resp.Results[0].Meta["format_compliance"]; !ok {
		t.Error("meta missing format_compliance")
	}
}

func TestEvaluateDefaultsMethod(t *testing.T) {
	engine := newTestEngine(map[string]provider.Client{
		"m1": staticClient{text: "answer"},
	}, EngineOptions{})

	req := baseRequest("m1")
	req.SynthesisMethod = ""
	resp, err := engine.Evaluate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Synthesis.Method != MethodLongestNonEmpty {
		t.Errorf("method = %s, want default %s", resp.Synthesis.Method, MethodLongestNonEmpty)
	}
}
