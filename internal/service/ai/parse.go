package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	leadingFence  = regexp.MustCompile("^```json\\s*")
	trailingFence = regexp.MustCompile("```$")
)

// cleanModelOutput strips a leading ```json fence and a trailing ``` fence, then trims whitespace.
func cleanModelOutput(raw string) string {
	cleaned := leadingFence.ReplaceAllString(strings.TrimSpace(raw), "")
	cleaned = trailingFence.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// decodeModelJSON cleans raw model output and unmarshals it into dst.
func decodeModelJSON(raw string, dst any) error {
	return json.Unmarshal([]byte(cleanModelOutput(raw)), dst)
}
