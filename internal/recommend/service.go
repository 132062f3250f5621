package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recommendation-backend/internal/llm"
	"recommendation-backend/internal/shared/jsonx"
)

const maxTokens = 768

// Service reconciles raw model completions into validated recommendation
// responses. It holds no per-request state; the model-call collaborator is
// injected and invoked exactly once per call.
type Service struct {
	LLM     llm.Invoker
	ModelID string
}

// Recommend builds the prompt, invokes the model, and coerces its output
// into a response whose shape is a strict function of the request: exactly
// numRecommendations objectives, reason present iff includeReason.
func (s *Service) Recommend(ctx context.Context, req Request) (Response, error) {
	if err := req.Validate(); err != nil {
		return Response{}, err
	}

	payload, err := buildUserPayload(req)
	if err != nil {
		return Response{}, fmt.Errorf("serialize request: %w", err)
	}

	raw, err := llm.InvokeText(ctx, s.LLM, s.ModelID, systemPrompt, payload, maxTokens)
	if err != nil {
		return Response{}, err
	}

	includeReason := req.IncludeReasonValue()
	num := req.NumRecommendationsValue()

	parsed, err := jsonx.Parse(raw)
	if err != nil {
		var parseErr *jsonx.ParseError
		if errors.As(err, &parseErr) {
			return fallbackExtract(raw, num, includeReason)
		}
		return Response{}, err
	}

	return shapeResult(parsed, num, includeReason)
}

// shapeResult validates the parsed model output against the request
// parameters. Under-generation fails; over-generation is truncated.
func shapeResult(parsed any, num int, includeReason bool) (Response, error) {
	obj, ok := parsed.(map[string]any)
	if !ok {
		return Response{}, fmt.Errorf("%w: model output must be a JSON object", ErrSchemaValidation)
	}

	rawList, ok := obj["definingObjectives"].([]any)
	if !ok {
		return Response{}, fmt.Errorf("%w: 'definingObjectives' must be a list of strings", ErrSchemaValidation)
	}

	defining := make([]string, 0, len(rawList))
	for _, item := range rawList {
		text, ok := item.(string)
		trimmed := strings.TrimSpace(text)
		if !ok || trimmed == "" {
			return Response{}, fmt.Errorf("%w: 'definingObjectives' must contain only non-empty strings", ErrSchemaValidation)
		}
		defining = append(defining, trimmed)
	}

	if len(defining) < num {
		return Response{}, fmt.Errorf("%w: model returned %d definingObjectives but numRecommendations=%d",
			ErrInsufficientResults, len(defining), num)
	}
	defining = defining[:num]

	out := Response{DefiningObjectives: defining}
	if includeReason {
		reason, ok := obj["reason"].(string)
		trimmed := strings.TrimSpace(reason)
		if !ok || trimmed == "" {
			return Response{}, fmt.Errorf("%w: missing required non-empty 'reason'", ErrSchemaValidation)
		}
		out.Reason = trimmed
	}
	return out, nil
}
