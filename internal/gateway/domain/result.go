// Package domain defines the core gateway types: the uniform result envelope,
// environment and endpoint tables, and the operation input structures.
package domain

// Result is the uniform envelope returned by every gateway operation. All
// failure modes (missing configuration, non-2xx responses, transport errors)
// become envelope fields so callers branch on OK instead of handling errors.
type Result struct {
	// OK mirrors HTTP 2xx of the gateway response.
	OK bool `json:"ok"`
	// Status is the gateway HTTP status, or 0 when no response was received.
	Status int `json:"status"`
	// Data is the decoded JSON body, nil when the body was absent or not JSON.
	Data map[string]any `json:"data"`
	// Error carries the failure reason, nil on success.
	Error *string `json:"error"`
	// Body retains the raw response body for diagnostics on failure; nil on
	// success to avoid duplicating Data.
	Body *string `json:"body"`
}

// ErrorResult builds a failure envelope with a local error message.
func ErrorResult(message string, status int) Result {
	return Result{
		OK:     false,
		Status: status,
		Error:  &message,
	}
}

// HTTPStatus returns the status to respond with: the gateway status when one
// was received, otherwise 200/400 based on OK.
func (r Result) HTTPStatus() int {
	if r.Status > 0 {
		return r.Status
	}
	if r.OK {
		return 200
	}
	return 400
}

// DataString returns the string at key in Data, or "" when absent or not a
// string.
func (r Result) DataString(key string) string {
	if r.Data == nil {
		return ""
	}
	s, _ := r.Data[key].(string)
	return s
}

// ErrorMessage returns the error string, or "" when the envelope has none.
func (r Result) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}
	return *r.Error
}
