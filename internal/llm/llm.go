package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// Invoker abstracts the model-call collaborator. Implementations send the
// request body to a model and return the provider's raw response envelope.
// Transport policy (timeouts, pooling, cancellation) belongs to the
// implementation; callers simply propagate its failures.
type Invoker interface {
	Invoke(ctx context.Context, modelID string, body Request) (json.RawMessage, error)
}

// ErrModelOutputEmpty signals that the provider responded without any usable
// completion text. It is surfaced upstream and never retried.
var ErrModelOutputEmpty = errors.New("model response did not contain text")

// InvokeText invokes the model with a single text message and returns the
// extracted completion text. Returns ErrModelOutputEmpty when the envelope
// holds no text.
func InvokeText(ctx context.Context, inv Invoker, modelID, system, userText string, maxTokens int) (string, error) {
	envelope, err := inv.Invoke(ctx, modelID, NewTextRequest(system, userText, maxTokens))
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(ExtractText(envelope))
	if text == "" {
		return "", ErrModelOutputEmpty
	}
	return text, nil
}
