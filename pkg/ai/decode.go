package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decodeJSON pulls the first JSON object out of a model reply, tolerating
// markdown fences and surrounding prose.
func decodeJSON(reply string, v any) error {
	s := strings.TrimSpace(reply)
	if s == "" || s == "null" {
		return ErrEmptyOutput
	}
	start, end := strings.Index(s, "{"), strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return fmt.Errorf("%w: reply holds no JSON object", ErrEmptyOutput)
	}
	if err := json.Unmarshal([]byte(s[start:end+1]), v); err != nil {
		return fmt.Errorf("%w: %v", ErrEmptyOutput, err)
	}
	return nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func orEmpty(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
