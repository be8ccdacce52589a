package ai

import (
	"encoding/json"
	"errors"
	"regexp"
	"sort"
	"strings"
)

// ErrNoStructuredData means no JSON object could be recovered from the model
// output by any extraction strategy.
var ErrNoStructuredData = errors.New("no structured data in model output")

var fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// ExtractJSON recovers a JSON object from raw model output and unmarshals it
// into v. Models wrap JSON in prose or markdown fences more often than not,
// so it tries progressively looser strategies:
//
//  1. parse the whole output as JSON
//  2. parse balanced {...} spans found by brace matching, largest first
//  3. parse the first fenced code block containing an object
//
// Spans are ordered largest first so a stray "{}" in surrounding prose
// cannot shadow the real payload.
func ExtractJSON(raw string, v interface{}) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ErrNoStructuredData
	}

	if err := json.Unmarshal([]byte(trimmed), v); err == nil {
		return nil
	}

	spans := balancedObjects(trimmed)
	sort.SliceStable(spans, func(i, j int) bool { return len(spans[i]) > len(spans[j]) })
	for _, span := range spans {
		if err := json.Unmarshal([]byte(span), v); err == nil {
			return nil
		}
	}

	if m := fencedBlockRe.FindStringSubmatch(trimmed); m != nil {
		if err := json.Unmarshal([]byte(m[1]), v); err == nil {
			return nil
		}
	}

	return ErrNoStructuredData
}

// balancedObjects returns every non-overlapping balanced {...} span in s,
// in source order.
func balancedObjects(s string) []string {
	var spans []string
	for i := 0; i < len(s); {
		start := strings.IndexByte(s[i:], '{')
		if start < 0 {
			break
		}
		start += i
		end := matchBrace(s, start)
		if end < 0 {
			break
		}
		spans = append(spans, s[start:end+1])
		i = end + 1
	}
	return spans
}

// matchBrace returns the index of the brace closing the object opened at
// start, skipping braces inside JSON string literals, or -1 when the object
// never closes.
func matchBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return i
				}
			}
		}
	}
	return -1
}
