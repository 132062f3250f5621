// Package jsonx parses JSON out of raw model completions, tolerating the
// formatting artifacts models commonly produce: surrounding prose, markdown
// fences, typographic quotes, and trailing commas.
package jsonx

import (
	"encoding/json"
	"fmt"
	"strings"
)

const snippetLimit = 200

// ParseError reports that no parsing strategy produced valid JSON. It carries
// a truncated prefix of the offending text for diagnostics.
type ParseError struct {
	Snippet string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no valid JSON found in model output (snippet: %q): %v", e.Snippet, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse attempts a strict parse of the whole string, then a strict parse of
// the first balanced JSON object embedded in it. The result is complete valid
// JSON or a *ParseError; partial structures are never returned.
func Parse(raw string) (any, error) {
	return parse(raw, false)
}

// ParseLenient behaves like Parse but, when both strict attempts fail,
// normalizes typographic quotes and strips trailing commas before retrying.
func ParseLenient(raw string) (any, error) {
	return parse(raw, true)
}

func parse(raw string, lenient bool) (any, error) {
	trimmed := strings.TrimSpace(raw)
	if value, err := parseStrict(trimmed); err == nil {
		return value, nil
	}

	var firstErr error
	if obj, ok := extractObject(trimmed); ok {
		value, err := parseStrict(obj)
		if err == nil {
			return value, nil
		}
		firstErr = err
	} else {
		firstErr = fmt.Errorf("no JSON object in text")
	}

	if lenient {
		cleaned := stripTrailingCommas(normalizeQuotes(trimmed))
		if value, err := parseStrict(cleaned); err == nil {
			return value, nil
		}
		if obj, ok := extractObject(cleaned); ok {
			if value, err := parseStrict(obj); err == nil {
				return value, nil
			}
		}
	}

	return nil, &ParseError{Snippet: snippet(trimmed), Err: firstErr}
}

func parseStrict(text string) (any, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text")
	}
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	// Reject trailing garbage so prose after the JSON falls through to the
	// extraction path instead of being silently ignored.
	var extra any
	if err := dec.Decode(&extra); err == nil {
		return nil, fmt.Errorf("trailing content after JSON value")
	}
	return value, nil
}

// extractObject returns the first balanced top-level JSON object in text,
// ignoring braces inside string literals. Markdown fences are stripped first.
func extractObject(text string) (string, bool) {
	text = stripFences(text)
	start := -1
	depth := 0
	inString := false
	escape := false
	for i, r := range text {
		if start == -1 {
			if r == '{' {
				start = i
				depth = 1
				inString = false
				escape = false
			}
			continue
		}
		if inString {
			if escape {
				escape = false
				continue
			}
			if r == '\\' {
				escape = true
				continue
			}
			if r == '"' {
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(text[start : i+1]), true
			}
		}
	}
	return "", false
}

func stripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimLeft(trimmed, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
		trimmed = strings.TrimSpace(trimmed)
	}
	if strings.HasSuffix(trimmed, "```") {
		trimmed = strings.TrimSuffix(trimmed, "```")
		trimmed = strings.TrimSpace(trimmed)
	}
	return trimmed
}

var quoteReplacer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
)

func normalizeQuotes(text string) string {
	return quoteReplacer.Replace(text)
}

// stripTrailingCommas removes commas that directly precede a closing brace or
// bracket, repeatedly, skipping string literals so legitimate commas inside
// values survive.
func stripTrailingCommas(text string) string {
	for {
		cleaned := stripTrailingCommasOnce(text)
		if cleaned == text {
			return cleaned
		}
		text = cleaned
	}
}

func stripTrailingCommasOnce(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	runes := []rune(text)
	inString := false
	escape := false
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if inString {
			b.WriteRune(r)
			if escape {
				escape = false
				continue
			}
			if r == '\\' {
				escape = true
				continue
			}
			if r == '"' {
				inString = false
			}
			continue
		}
		if r == '"' {
			inString = true
			b.WriteRune(r)
			continue
		}
		if r == ',' {
			j := i + 1
			for j < len(runes) && isJSONSpace(runes[j]) {
				j++
			}
			if j < len(runes) && (runes[j] == '}' || runes[j] == ']') {
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isJSONSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func snippet(text string) string {
	if len(text) > snippetLimit {
		return text[:snippetLimit]
	}
	return text
}
