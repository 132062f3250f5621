package llm

import (
	"encoding/json"
	"strings"
)

const anthropicVersion = "bedrock-2023-05-31"

// Request is the anthropic messages body sent to the model.
type Request struct {
	AnthropicVersion string    `json:"anthropic_version"`
	System           string    `json:"system"`
	Messages         []Message `json:"messages"`
	MaxTokens        int       `json:"max_tokens"`
	Temperature      float64   `json:"temperature"`
}

// Message is a single conversation turn.
type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// ContentBlock is one typed content element inside a message.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewTextRequest builds a deterministic single-turn request with a system
// prompt and one user text block.
func NewTextRequest(system, userText string, maxTokens int) Request {
	return Request{
		AnthropicVersion: anthropicVersion,
		System:           system,
		Messages: []Message{
			{
				Role:    "user",
				Content: []ContentBlock{{Type: "text", Text: userText}},
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0,
	}
}

// ExtractText pulls the flat completion text out of a provider response
// envelope. Malformed or textless envelopes yield the empty string; absence
// of text is a normal outcome for the caller to handle, not a failure here.
func ExtractText(envelope json.RawMessage) string {
	if len(envelope) == 0 {
		return ""
	}
	var parsed struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(envelope, &parsed); err != nil {
		return ""
	}
	var b strings.Builder
	for _, block := range parsed.Content {
		if block.Type != "" && block.Type != "text" {
			continue
		}
		b.WriteString(block.Text)
	}
	return b.String()
}
