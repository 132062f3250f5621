package testgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"recommendation-backend/internal/llm"
	"recommendation-backend/internal/shared/jsonx"
	"recommendation-backend/internal/shared/util"
)

const (
	maxTokensGeneration = 1100
	maxTokensRepair     = 1400
)

// Service reconciles raw model completions into validated test-generation
// responses. At most two model calls happen per request: the generation call
// and, when parsing fails, a single repair call.
type Service struct {
	LLM     llm.Invoker
	ModelID string
}

// Generate builds the prompt, invokes the model, parses its output
// leniently (with one repair round-trip if needed), enforces the minimum
// case count, and overwrites domain/language with the request's own values.
func (s *Service) Generate(ctx context.Context, req Request) (Response, error) {
	if err := req.Validate(); err != nil {
		return Response{}, err
	}

	payload, err := buildUserPayload(req)
	if err != nil {
		return Response{}, fmt.Errorf("serialize request: %w", err)
	}

	genText, err := llm.InvokeText(ctx, s.LLM, s.ModelID, systemPromptGeneration, payload, maxTokensGeneration)
	if err != nil {
		return Response{}, err
	}

	parsed, err := s.parseOrRepair(ctx, genText)
	if err != nil {
		return Response{}, err
	}

	out, err := shapeResult(parsed, req.NumberOfIntentsValue())
	if err != nil {
		return Response{}, err
	}

	// Truth enforcement: the caller's stated parameters win over whatever
	// the model produced.
	out.Domain = req.Domain
	out.Language = req.LanguageValue()
	return out, nil
}

// parseOrRepair tries the lenient parser, then performs exactly one repair
// round-trip through the model. No further retries after that.
func (s *Service) parseOrRepair(ctx context.Context, genText string) (any, error) {
	parsed, err := jsonx.ParseLenient(genText)
	if err == nil {
		return parsed, nil
	}
	var parseErr *jsonx.ParseError
	if !errors.As(err, &parseErr) {
		return nil, err
	}

	repairedText, err := llm.InvokeText(ctx, s.LLM, s.ModelID, systemPromptRepair, genText, maxTokensRepair)
	if err != nil {
		if errors.Is(err, llm.ErrModelOutputEmpty) {
			return nil, fmt.Errorf("%w: repair call returned no text", ErrJSONRepairFailed)
		}
		return nil, err
	}

	parsed, err = jsonx.ParseLenient(repairedText)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrJSONRepairFailed, util.SanitizeError(err))
	}
	return parsed, nil
}

// shapeResult validates the parsed output: an object with at least minCases
// schema-conformant test cases. One malformed case fails the whole response.
func shapeResult(parsed any, minCases int) (Response, error) {
	obj, ok := parsed.(map[string]any)
	if !ok {
		return Response{}, fmt.Errorf("%w: model output must be a JSON object", ErrSchemaValidation)
	}

	rawCases, ok := obj["testCases"].([]any)
	if !ok || len(rawCases) == 0 {
		return Response{}, fmt.Errorf("%w: model output must include non-empty 'testCases' list", ErrInsufficientResults)
	}
	if len(rawCases) < minCases {
		return Response{}, fmt.Errorf("%w: model returned %d testCases but minimum required is %d",
			ErrInsufficientResults, len(rawCases), minCases)
	}

	// Round-trip through the typed schema so wrong field types surface as
	// decode errors instead of leaking duck-typed values to the client.
	encoded, err := json.Marshal(obj)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	var out Response
	if err := json.Unmarshal(encoded, &out); err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}

	for i := range out.TestCases {
		tc := &out.TestCases[i]
		if strings.TrimSpace(tc.Name) == "" {
			return Response{}, fmt.Errorf("%w: testCases[%d].name is required", ErrSchemaValidation, i)
		}
		if strings.TrimSpace(tc.Description) == "" {
			return Response{}, fmt.Errorf("%w: testCases[%d].description is required", ErrSchemaValidation, i)
		}
		if tc.UserVariables == nil {
			tc.UserVariables = map[string]any{}
		}
		if tc.Steps == nil {
			tc.Steps = []string{}
		}
		if tc.Expected == nil {
			tc.Expected = []string{}
		}
	}
	return out, nil
}
