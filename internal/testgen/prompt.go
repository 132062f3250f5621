package testgen

import (
	"bytes"
	"encoding/json"
)

const systemPromptGeneration = `You are a helpful assistant that generates high-quality chatbot test cases in JSON.

Input:
You will receive a JSON payload containing:
- domain: string
- context:
  - description: string
  - language: string (e.g. "en")
  - number_of_intents: integer (1..10)
  - userDefinedVariables: object (arbitrary key/value variables)

Output rules (STRICT):
- You MUST return ONLY valid JSON. No markdown. No extra text.
- All strings MUST be valid JSON strings (escape quotes like \" and newlines like \n).
- Do NOT include trailing commas.
- Do NOT include any keys other than: domain, language, testCases.

The JSON MUST match EXACTLY this schema:

{
  "domain": string,
  "language": string,
  "testCases": [
    {
      "name": string,
      "description": string,
      "persona": string | null,
      "userVariables": object,
      "steps": [string, ...],
      "expected": [string, ...]
    }
  ]
}

Quality requirements:
- Return AT LEAST (number_of_intents) test cases.
- Each test case should represent a different intent/category relevant to the domain.
- Steps and expected should be concrete and testable, written in the requested language.`

const systemPromptRepair = `You are a strict JSON repair tool.

You will be given text that is intended to be JSON but may be invalid.
Your job is to output ONLY valid JSON that matches the required schema below.
No markdown, no commentary, no extra keys.

Required schema:

{
  "domain": string,
  "language": string,
  "testCases": [
    {
      "name": string,
      "description": string,
      "persona": string | null,
      "userVariables": object,
      "steps": [string, ...],
      "expected": [string, ...]
    }
  ]
}

Rules:
- Output must be valid JSON.
- Escape any quotes inside strings properly.
- Remove trailing commas.
- Preserve as much original meaning/content as possible.`

// buildUserPayload serializes the request as the user message, with resolved
// defaults so the model sees the effective parameters.
func buildUserPayload(req Request) (string, error) {
	language := req.LanguageValue()
	intents := req.NumberOfIntentsValue()

	ctx := Context{}
	if req.Context != nil {
		ctx = *req.Context
	}
	ctx.Language = language
	ctx.NumberOfIntents = &intents
	if ctx.UserDefinedVariables == nil {
		ctx.UserDefinedVariables = map[string]any{}
	}
	req.Context = &ctx

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(req); err != nil {
		return "", err
	}
	return buf.String(), nil
}
