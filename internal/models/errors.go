package models

// ErrorResponse is the wire shape for all server errors. The detail field
// is what clients surface to users.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}
