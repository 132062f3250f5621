package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"recommendation-backend/internal/llm"
)

type staticLLM struct {
	text  string
	err   error
	calls int
	body  llm.Request
}

func (s *staticLLM) Invoke(ctx context.Context, modelID string, body llm.Request) (json.RawMessage, error) {
	s.calls++
	s.body = body
	if s.err != nil {
		return nil, s.err
	}
	raw, err := json.Marshal(map[string]any{
		"content": []map[string]any{{"type": "text", "text": s.text}},
	})
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func newService(text string) (*Service, *staticLLM) {
	inv := &staticLLM{text: text}
	return &Service{LLM: inv, ModelID: "model-test"}, inv
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestRecommendDefaults(t *testing.T) {
	svc, inv := newService(`{"reason": "these cover the flows", "definingObjectives": ["a", "b", "c"]}`)
	resp, err := svc.Recommend(context.Background(), Request{Objective: "book a flight"})
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(resp.DefiningObjectives) != 3 {
		t.Fatalf("expected 3 objectives, got %d", len(resp.DefiningObjectives))
	}
	if resp.Reason != "these cover the flows" {
		t.Fatalf("unexpected reason: %q", resp.Reason)
	}
	if inv.calls != 1 {
		t.Fatalf("expected exactly one model call, got %d", inv.calls)
	}
	if inv.body.MaxTokens != 768 {
		t.Fatalf("unexpected max_tokens: %d", inv.body.MaxTokens)
	}
}

func TestRecommendTruncatesOverGeneration(t *testing.T) {
	svc, _ := newService(`{"reason": "r", "definingObjectives": ["a", "b", "c", "d", "e"]}`)
	resp, err := svc.Recommend(context.Background(), Request{
		Objective:          "book a flight",
		NumRecommendations: intPtr(2),
	})
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(resp.DefiningObjectives) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(resp.DefiningObjectives))
	}
	if resp.DefiningObjectives[0] != "a" || resp.DefiningObjectives[1] != "b" {
		t.Fatalf("truncation must keep leading items: %v", resp.DefiningObjectives)
	}
}

func TestRecommendUnderGenerationFails(t *testing.T) {
	svc, _ := newService(`{"reason": "r", "definingObjectives": ["a", "b"]}`)
	_, err := svc.Recommend(context.Background(), Request{Objective: "book a flight"})
	if !errors.Is(err, ErrInsufficientResults) {
		t.Fatalf("expected ErrInsufficientResults, got %v", err)
	}
}

func TestRecommendOmitsReasonKey(t *testing.T) {
	svc, _ := newService(`{"definingObjectives": ["a", "b", "c"]}`)
	resp, err := svc.Recommend(context.Background(), Request{
		Objective:     "book a flight",
		IncludeReason: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	encoded, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var asMap map[string]any
	if err := json.Unmarshal(encoded, &asMap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, present := asMap["reason"]; present {
		t.Fatalf("reason key must be absent when not requested: %s", encoded)
	}
}

func TestRecommendMissingReasonFails(t *testing.T) {
	svc, _ := newService(`{"definingObjectives": ["a", "b", "c"]}`)
	_, err := svc.Recommend(context.Background(), Request{Objective: "book a flight"})
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
}

func TestRecommendEmptyObjectiveEntryFails(t *testing.T) {
	svc, _ := newService(`{"reason": "r", "definingObjectives": ["a", "  ", "c"]}`)
	_, err := svc.Recommend(context.Background(), Request{Objective: "book a flight"})
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
}

func TestRecommendNonListObjectivesFails(t *testing.T) {
	svc, _ := newService(`{"reason": "r", "definingObjectives": "a; b; c"}`)
	_, err := svc.Recommend(context.Background(), Request{Objective: "book a flight"})
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
}

func TestRecommendEmptyModelOutput(t *testing.T) {
	svc, _ := newService("   ")
	_, err := svc.Recommend(context.Background(), Request{Objective: "book a flight"})
	if !errors.Is(err, llm.ErrModelOutputEmpty) {
		t.Fatalf("expected ErrModelOutputEmpty, got %v", err)
	}
}

func TestRecommendValidationRejectsBounds(t *testing.T) {
	svc, inv := newService(`{}`)
	if _, err := svc.Recommend(context.Background(), Request{}); err == nil {
		t.Fatalf("expected validation error for missing objective")
	}
	if _, err := svc.Recommend(context.Background(), Request{
		Objective:          "x",
		NumRecommendations: intPtr(6),
	}); err == nil {
		t.Fatalf("expected validation error for numRecommendations=6")
	}
	if inv.calls != 0 {
		t.Fatalf("validation failures must not reach the model, got %d calls", inv.calls)
	}
}

func TestRecommendPropagatesInvokerError(t *testing.T) {
	sentinel := errors.New("bedrock unavailable")
	svc := &Service{LLM: &staticLLM{err: sentinel}, ModelID: "model-test"}
	_, err := svc.Recommend(context.Background(), Request{Objective: "book a flight"})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected invoker error, got %v", err)
	}
	if ClassifyError(err) != ErrorCodeUpstream {
		t.Fatalf("unexpected classification: %s", ClassifyError(err))
	}
}

func TestRecommendJSONEmbeddedInProse(t *testing.T) {
	svc, _ := newService("Here you go:\n\n{\"reason\": \"r\", \"definingObjectives\": [\"a\", \"b\", \"c\"]}\n\nHope this helps!")
	resp, err := svc.Recommend(context.Background(), Request{Objective: "book a flight"})
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(resp.DefiningObjectives) != 3 {
		t.Fatalf("expected 3 objectives, got %d", len(resp.DefiningObjectives))
	}
}
