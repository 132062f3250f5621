// Package localmock provides a deterministic in-process model client so the
// service can run end to end without AWS credentials (ENV=local).
package localmock

import (
	"context"
	"encoding/json"
	"fmt"

	"recommendation-backend/internal/llm"
)

// Client fabricates schema-valid completions shaped by the request payload.
type Client struct{}

// New constructs a local mock client.
func New() *Client {
	return &Client{}
}

// Invoke inspects the serialized request payload and returns a canned
// envelope matching the shape the caller asked for.
func (c *Client) Invoke(ctx context.Context, modelID string, body llm.Request) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	userText := ""
	for _, msg := range body.Messages {
		for _, block := range msg.Content {
			if block.Text != "" {
				userText = block.Text
			}
		}
	}

	var payload map[string]any
	_ = json.Unmarshal([]byte(userText), &payload)

	var completion any
	if _, ok := payload["domain"]; ok {
		completion = cannedTestCases(payload)
	} else {
		completion = cannedObjectives(payload)
	}

	text, err := json.Marshal(completion)
	if err != nil {
		return nil, err
	}
	return envelope(string(text))
}

func cannedObjectives(payload map[string]any) map[string]any {
	n := intField(payload, "numRecommendations", 3)
	objective, _ := payload["objective"].(string)
	if objective == "" {
		objective = "the stated objective"
	}

	objectives := make([]string, 0, n)
	for i := 0; i < n; i++ {
		objectives = append(objectives, fmt.Sprintf("Verify the assistant resolves %q (variant %d)", objective, i+1))
	}

	out := map[string]any{"definingObjectives": objectives}
	includeReason := true
	if v, ok := payload["includeReason"].(bool); ok {
		includeReason = v
	}
	if includeReason {
		out["reason"] = "Mock reasoning: objectives restated as concrete, testable checks."
	}
	return out
}

func cannedTestCases(payload map[string]any) map[string]any {
	domain, _ := payload["domain"].(string)
	language := "en"
	k := 3
	if rawCtx, ok := payload["context"].(map[string]any); ok {
		k = intField(rawCtx, "number_of_intents", 3)
		if v, ok := rawCtx["language"].(string); ok && v != "" {
			language = v
		}
	}

	cases := make([]map[string]any, 0, k)
	for i := 0; i < k; i++ {
		cases = append(cases, map[string]any{
			"name":          fmt.Sprintf("mock-intent-%d", i+1),
			"description":   fmt.Sprintf("Mock test case %d for %s", i+1, domain),
			"persona":       nil,
			"userVariables": map[string]any{},
			"steps":         []string{"Ask the bot a representative question"},
			"expected":      []string{"Bot answers in the configured language"},
		})
	}

	return map[string]any{
		"domain":    domain,
		"language":  language,
		"testCases": cases,
	}
}

func intField(payload map[string]any, key string, def int) int {
	switch v := payload[key].(type) {
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case int:
		return v
	}
	return def
}

func envelope(text string) (json.RawMessage, error) {
	out, err := json.Marshal(map[string]any{
		"content": []map[string]any{{"type": "text", "text": text}},
	})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(out), nil
}

var _ llm.Invoker = (*Client)(nil)
