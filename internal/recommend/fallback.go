package recommend

import (
	"fmt"
	"regexp"
	"strings"

	"recommendation-backend/internal/shared/util"
)

// genericReason replaces a first paragraph that is itself a list item, which
// would make a misleading explanation.
const genericReason = "Objectives were extracted from the model's plain-text response."

const minChunkLen = 12

var (
	numberedMarker = regexp.MustCompile(`^\s*\d+[.)]\s+(.+)$`)
	bulletMarker   = regexp.MustCompile(`^\s*[-•*]\s+(.+)$`)
)

// fallbackExtract recovers objectives from prose when no JSON could be
// parsed: list markers first, sentence chunks second. Candidates are never
// fabricated; too few remains a hard failure.
func fallbackExtract(raw string, num int, includeReason bool) (Response, error) {
	candidates := listItemCandidates(raw)
	if len(candidates) == 0 {
		candidates = chunkCandidates(raw)
	}
	candidates = dedupeFold(candidates)

	if len(candidates) < num {
		return Response{}, fmt.Errorf("%w: extracted %d candidate objectives from plain text, need %d (raw: %q)",
			ErrInsufficientResults, len(candidates), num, util.TruncateText(strings.TrimSpace(raw), 200))
	}

	out := Response{DefiningObjectives: candidates[:num]}
	if includeReason {
		out.Reason = deriveReason(raw)
	}
	return out, nil
}

// listItemCandidates takes the trailing text of every numbered or bulleted
// line, in source order.
func listItemCandidates(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := numberedMarker.FindStringSubmatch(line); m != nil {
			out = append(out, strings.TrimSpace(m[1]))
			continue
		}
		if m := bulletMarker.FindStringSubmatch(line); m != nil {
			out = append(out, strings.TrimSpace(m[1]))
		}
	}
	return out
}

// chunkCandidates splits on semicolons and newlines, keeping chunks long
// enough to plausibly be objectives.
func chunkCandidates(raw string) []string {
	var out []string
	for _, chunk := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == '\n'
	}) {
		chunk = strings.TrimSpace(chunk)
		if len(chunk) >= minChunkLen {
			out = append(out, chunk)
		}
	}
	return out
}

func dedupeFold(candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		key := strings.ToLower(c)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

// deriveReason takes the first paragraph of the raw text. A paragraph that
// is itself a list item would misrepresent the model, so the generic reason
// stands in.
func deriveReason(raw string) string {
	paragraph := strings.TrimSpace(raw)
	for _, sep := range []string{"\r\n\r\n", "\n\n"} {
		if idx := strings.Index(paragraph, sep); idx >= 0 {
			paragraph = strings.TrimSpace(paragraph[:idx])
			break
		}
	}
	if paragraph == "" || looksLikeListItem(paragraph) {
		return genericReason
	}
	return paragraph
}

func looksLikeListItem(paragraph string) bool {
	firstLine := paragraph
	if idx := strings.Index(firstLine, "\n"); idx >= 0 {
		firstLine = firstLine[:idx]
	}
	firstLine = strings.TrimSpace(firstLine)
	return numberedMarker.MatchString(firstLine) || bulletMarker.MatchString(firstLine)
}
