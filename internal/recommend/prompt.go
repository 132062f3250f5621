package recommend

import (
	"bytes"
	"encoding/json"
)

const systemPrompt = `You are a helpful assistant that improves an objective into clearer, testable defining objectives.

Input: You will receive a JSON payload containing:
  - objective: string
  - context: optional object with fields like persona, domain, instructions, satisfactionCriteria, extraNotes
  - includeReason: boolean (default true)
  - numRecommendations: integer (1..5, default 3)

Output rules:
- You MUST return ONLY valid JSON (no markdown, no extra text).
- You MUST return EXACTLY these keys depending on includeReason:

If includeReason is true:
{
  "reason": string,
  "definingObjectives": [string, ...]   // length MUST equal numRecommendations
}

If includeReason is false:
{
  "definingObjectives": [string, ...]   // length MUST equal numRecommendations
}

No other keys are allowed. The definingObjectives list MUST contain EXACTLY numRecommendations items.`

// buildUserPayload serializes the request as the user message, with resolved
// defaults so the model sees the effective parameters.
func buildUserPayload(req Request) (string, error) {
	includeReason := req.IncludeReasonValue()
	num := req.NumRecommendationsValue()
	req.IncludeReason = &includeReason
	req.NumRecommendations = &num

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(req); err != nil {
		return "", err
	}
	return buf.String(), nil
}
