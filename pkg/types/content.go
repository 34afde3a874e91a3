package types

import "fmt"

// TextContent is the uniform error payload every tool returns in place of a
// raw fault: {"type":"text","text":"..."}.
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ErrorContent builds the uniform error payload for a failed tool action,
// e.g. ErrorContent("listing indices", err).
func ErrorContent(action string, err error) []TextContent {
	return []TextContent{{
		Type: "text",
		Text: fmt.Sprintf("Error %s: %v", action, err),
	}}
}
