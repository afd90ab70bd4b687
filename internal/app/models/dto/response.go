package dto

// APIResponse is the standard envelope for successful responses. Error
// is set by the central error handler instead of Data when a request
// fails.
type APIResponse struct {
	Data  interface{}  `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// SuccessResponse represents a bare confirmation message
type SuccessResponse struct {
	Message string `json:"message"`
}
