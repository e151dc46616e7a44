package dto

// Envelope is the uniform response shape. Every endpoint, success or
// failure, answers with success, message and data.
type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Data      any    `json:"data,omitempty"`
	ErrorType string `json:"errorType,omitempty"`
	Details   any    `json:"details,omitempty"`
}

// OK wraps a successful payload.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKMessage wraps a successful payload with a human message.
func OKMessage(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Pagination echoes listing window metadata.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// PagedData wraps a listing plus its pagination block.
type PagedData struct {
	Items      any        `json:"items"`
	Pagination Pagination `json:"pagination"`
}
