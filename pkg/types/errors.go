package types

import "fmt"

// Error code constants for agent-facing errors.
const (
	ErrCodeUnknownTool    = "UNKNOWN_TOOL"
	ErrCodeDuplicateTool  = "DUPLICATE_TOOL"
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeIncompatible   = "VERSION_INCOMPATIBLE"
	ErrCodeUpstreamFailed = "UPSTREAM_FAILED"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)

// UnknownToolError is returned when a dispatch names a tool absent from the
// registry. Surfaced to the caller, never a crash.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("[%s] unknown tool %q", ErrCodeUnknownTool, e.Name)
}

// DuplicateToolError is a startup-time registration conflict. The registry
// refuses the new entry; startup must abort.
type DuplicateToolError struct {
	Name string
}

func (e *DuplicateToolError) Error() string {
	return fmt.Sprintf("[%s] tool %q is already registered", ErrCodeDuplicateTool, e.Name)
}

// CompatibilityError indicates the target cluster's version falls outside a
// tool's declared range. No upstream call is attempted once this is raised.
type CompatibilityError struct {
	Tool    string // display name
	Current string // cluster's reported version
	Range   string // human-readable supported range, may be empty
}

func (e *CompatibilityError) Error() string {
	msg := fmt.Sprintf("Tool '%s' is not supported for this OpenSearch version (current version: %s).", e.Tool, e.Current)
	if e.Range != "" {
		msg += fmt.Sprintf(" Supported version: %s.", e.Range)
	}
	return msg
}

// UpstreamError wraps a failed call to the OpenSearch cluster: transport
// failure, malformed response, or a non-2xx status.
type UpstreamError struct {
	Method     string
	Path       string
	StatusCode int // zero when the request never completed
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("[%s] %s %s returned %d: %s", ErrCodeUpstreamFailed, e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("[%s] %s %s failed: %s", ErrCodeUpstreamFailed, e.Method, e.Path, e.Message)
}
