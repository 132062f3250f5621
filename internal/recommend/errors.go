package recommend

import (
	"errors"

	"recommendation-backend/internal/llm"
	"recommendation-backend/internal/shared/jsonx"
)

var (
	// ErrInsufficientResults reports that the model produced fewer
	// objectives than the request demanded. Never padded.
	ErrInsufficientResults = errors.New("model returned fewer definingObjectives than requested")

	// ErrSchemaValidation reports model output that does not conform to the
	// response shape.
	ErrSchemaValidation = errors.New("model output does not match the required shape")
)

const (
	ErrorCodeValidation          = "VALIDATION_ERROR"
	ErrorCodeModelOutputEmpty    = "MODEL_OUTPUT_EMPTY"
	ErrorCodeParse               = "PARSE_ERROR"
	ErrorCodeInsufficientResults = "INSUFFICIENT_RESULTS"
	ErrorCodeSchemaValidation    = "SCHEMA_VALIDATION_ERROR"
	ErrorCodeUpstream            = "UPSTREAM_ERROR"
)

// ClassifyError maps a reconciliation failure to its error code.
func ClassifyError(err error) string {
	var parseErr *jsonx.ParseError
	switch {
	case errors.Is(err, llm.ErrModelOutputEmpty):
		return ErrorCodeModelOutputEmpty
	case errors.Is(err, ErrInsufficientResults):
		return ErrorCodeInsufficientResults
	case errors.Is(err, ErrSchemaValidation):
		return ErrorCodeSchemaValidation
	case errors.As(err, &parseErr):
		return ErrorCodeParse
	default:
		return ErrorCodeUpstream
	}
}
