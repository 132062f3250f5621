package usage

import "time"

// Outcome values recorded per call.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// Record is one reconciliation call's accounting entry. Only derived
// metadata is kept; request and response bodies stay transient.
type Record struct {
	ID         string    `json:"id"`
	Endpoint   string    `json:"endpoint"`
	APIKeyHash string    `json:"apiKeyHash"`
	ModelID    string    `json:"modelId"`
	Outcome    string    `json:"outcome"`
	ErrorCode  string    `json:"errorCode,omitempty"`
	DurationMs float64   `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}
