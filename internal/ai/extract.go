package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

// LLM replies are supposed to be bare JSON but often arrive wrapped in
// markdown fences or surrounded by prose. These helpers dig the payload out.

var (
	fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	jsonObjectRe  = regexp.MustCompile(`(?s)\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`)
	jsonArrayRe   = regexp.MustCompile(`(?s)\[[^\[\]]*(?:\[[^\[\]]*\][^\[\]]*)*\]`)
)

func extractJSONObject(response string) (json.RawMessage, bool) {
	return extractJSON(response, "{", jsonObjectRe)
}

func extractJSONArray(response string) (json.RawMessage, bool) {
	return extractJSON(response, "[", jsonArrayRe)
}

func extractJSON(response, prefix string, shape *regexp.Regexp) (json.RawMessage, bool) {
	trimmed := strings.TrimSpace(response)
	if strings.HasPrefix(trimmed, prefix) && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), true
	}

	for _, m := range fencedBlockRe.FindAllStringSubmatch(response, -1) {
		candidate := strings.TrimSpace(m[1])
		if strings.HasPrefix(candidate, prefix) && json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), true
		}
	}

	for _, candidate := range shape.FindAllString(response, -1) {
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), true
		}
	}

	return nil, false
}
