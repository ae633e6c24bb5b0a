package dto

// ErrorResponse is the {"detail": "..."} body used for auth, 404 and 500s.
type ErrorResponse struct {
	Detail    string `json:"detail"`
	RequestID string `json:"request_id,omitempty"`
}

// FieldErrors maps a field name to its messages, e.g. {"name": ["This field is required."]}.
type FieldErrors map[string][]string

// SubtaskTaskError is the 400 body for a subtask pointing at a foreign or
// missing task.
type SubtaskTaskError struct {
	Error string `json:"error"`
}
