package recommend

import (
	"errors"
	"strings"
)

const (
	defaultNumRecommendations = 3
	maxNumRecommendations     = 5
)

// Context carries optional free-text hints for the model. Every field is
// optional and the whole object may be absent from the request.
type Context struct {
	Persona              string         `json:"persona,omitempty"`
	Domain               string         `json:"domain,omitempty"`
	Instructions         string         `json:"instructions,omitempty"`
	SatisfactionCriteria []string       `json:"satisfactionCriteria,omitempty"`
	ExtraNotes           string         `json:"extraNotes,omitempty"`
	UserDefinedVariables map[string]any `json:"userDefinedVariables,omitempty"`
}

// Request is the inbound payload for the recommendation endpoint.
type Request struct {
	Objective          string   `json:"objective"`
	Context            *Context `json:"context,omitempty"`
	IncludeReason      *bool    `json:"includeReason,omitempty"`
	NumRecommendations *int     `json:"numRecommendations,omitempty"`
}

// Validate checks the request against its declared bounds.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Objective) == "" {
		return errors.New("objective is required")
	}
	if r.NumRecommendations != nil {
		if n := *r.NumRecommendations; n < 1 || n > maxNumRecommendations {
			return errors.New("numRecommendations must be between 1 and 5")
		}
	}
	return nil
}

// IncludeReasonValue resolves the includeReason default (true).
func (r Request) IncludeReasonValue() bool {
	if r.IncludeReason == nil {
		return true
	}
	return *r.IncludeReason
}

// NumRecommendationsValue resolves the numRecommendations default (3).
func (r Request) NumRecommendationsValue() int {
	if r.NumRecommendations == nil {
		return defaultNumRecommendations
	}
	return *r.NumRecommendations
}

// Response is the outbound payload. Reason is serialized only when the
// request asked for it; length of DefiningObjectives always equals the
// request's numRecommendations.
type Response struct {
	Reason             string   `json:"reason,omitempty"`
	DefiningObjectives []string `json:"definingObjectives"`
}
