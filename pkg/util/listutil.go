package util

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Separator used when a list arrives as delimited text.
const (
	SeparatorNewline = "\n"
	SeparatorComma   = ","
)

// ParseListText normalizes text that is either a JSON encoded array or a
// delimited list. Items are trimmed and empty items dropped.
func ParseListText(text, sep string) []string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "[") {
		if items, err := decodeListItems([]byte(trimmed)); err == nil {
			return CleanList(items)
		}
	}
	return CleanList(strings.Split(text, sep))
}

// ParseListJSON accepts a raw JSON value holding either an array of strings or
// a string that ParseListText understands.
func ParseListJSON(raw json.RawMessage, sep string) ([]string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	switch trimmed[0] {
	case '[':
		items, err := decodeListItems(raw)
		if err != nil {
			return nil, err
		}
		return CleanList(items), nil
	case '"':
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, fmt.Errorf("invalid list: %w", err)
		}
		return ParseListText(text, sep), nil
	}
	return nil, fmt.Errorf("list must be an array or a string")
}

// decodeListItems decodes a JSON array of strings, numbers or booleans into
// their text form.
func decodeListItems(raw []byte) ([]string, error) {
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("invalid list: %w", err)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case float64, bool:
			out = append(out, fmt.Sprint(v))
		default:
			return nil, fmt.Errorf("invalid list item %v", item)
		}
	}
	return out, nil
}

// CleanList trims every item and drops the empty ones.
func CleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if v := strings.TrimSpace(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify lowercases s and collapses whitespace runs into single hyphens.
func Slugify(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
}
