package testgen

import (
	"errors"

	"recommendation-backend/internal/llm"
	"recommendation-backend/internal/shared/jsonx"
)

var (
	// ErrInsufficientResults reports that the model produced fewer test
	// cases than number_of_intents. Never padded with synthetic cases.
	ErrInsufficientResults = errors.New("model returned fewer testCases than required")

	// ErrJSONRepairFailed reports that the single repair round-trip still
	// did not yield valid JSON.
	ErrJSONRepairFailed = errors.New("model returned invalid JSON and the repair attempt failed")

	// ErrSchemaValidation reports model output that does not conform to the
	// response shape.
	ErrSchemaValidation = errors.New("model output does not match the required shape")
)

const (
	ErrorCodeValidation          = "VALIDATION_ERROR"
	ErrorCodeModelOutputEmpty    = "MODEL_OUTPUT_EMPTY"
	ErrorCodeInsufficientResults = "INSUFFICIENT_RESULTS"
	ErrorCodeJSONRepairFailed    = "JSON_REPAIR_FAILED"
	ErrorCodeSchemaValidation    = "SCHEMA_VALIDATION_ERROR"
	ErrorCodeUpstream            = "UPSTREAM_ERROR"
)

// ClassifyError maps a reconciliation failure to its error code.
func ClassifyError(err error) string {
	var parseErr *jsonx.ParseError
	switch {
	case errors.Is(err, llm.ErrModelOutputEmpty):
		return ErrorCodeModelOutputEmpty
	case errors.Is(err, ErrJSONRepairFailed):
		return ErrorCodeJSONRepairFailed
	case errors.Is(err, ErrInsufficientResults):
		return ErrorCodeInsufficientResults
	case errors.Is(err, ErrSchemaValidation):
		return ErrorCodeSchemaValidation
	case errors.As(err, &parseErr):
		return ErrorCodeJSONRepairFailed
	default:
		return ErrorCodeUpstream
	}
}
