package testgen

import (
	"errors"
	"strings"
)

const (
	defaultLanguage        = "en"
	defaultNumberOfIntents = 3
	maxNumberOfIntents     = 10
)

// Context describes the system under test.
type Context struct {
	Description          string         `json:"description"`
	Language             string         `json:"language,omitempty"`
	NumberOfIntents      *int           `json:"number_of_intents,omitempty"`
	UserDefinedVariables map[string]any `json:"userDefinedVariables,omitempty"`
}

// Request is the inbound payload for the test-generation endpoint.
type Request struct {
	Domain  string   `json:"domain"`
	Context *Context `json:"context"`
}

// Validate checks the request against its declared bounds.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Domain) == "" {
		return errors.New("domain is required")
	}
	if r.Context == nil {
		return errors.New("context is required")
	}
	if strings.TrimSpace(r.Context.Description) == "" {
		return errors.New("context.description is required")
	}
	if lang := strings.TrimSpace(r.Context.Language); lang != "" && (len(lang) < 2 || len(lang) > 16) {
		return errors.New("context.language must be between 2 and 16 characters")
	}
	if r.Context.NumberOfIntents != nil {
		if k := *r.Context.NumberOfIntents; k < 1 || k > maxNumberOfIntents {
			return errors.New("context.number_of_intents must be between 1 and 10")
		}
	}
	return nil
}

// LanguageValue resolves the language default ("en").
func (r Request) LanguageValue() string {
	if r.Context == nil {
		return defaultLanguage
	}
	if lang := strings.TrimSpace(r.Context.Language); lang != "" {
		return lang
	}
	return defaultLanguage
}

// NumberOfIntentsValue resolves the number_of_intents default (3).
func (r Request) NumberOfIntentsValue() int {
	if r.Context == nil || r.Context.NumberOfIntents == nil {
		return defaultNumberOfIntents
	}
	return *r.Context.NumberOfIntents
}

// TestCase is one generated chatbot test case.
type TestCase struct {
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Persona       *string        `json:"persona"`
	UserVariables map[string]any `json:"userVariables"`
	Steps         []string       `json:"steps"`
	Expected      []string       `json:"expected"`
}

// Response is the outbound payload. Domain and Language always equal the
// request's values; the model cannot override them.
type Response struct {
	Domain    string     `json:"domain"`
	Language  string     `json:"language"`
	TestCases []TestCase `json:"testCases"`
}
