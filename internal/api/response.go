// Package api defines the shared HTTP response envelope.
// Every endpoint returns a success flag and a human-readable message;
// validation failures additionally carry a field->message map so forms
// can highlight the offending inputs.
package api

// Response is the standard JSON envelope for all endpoints.
type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// OK builds a success response with a message and optional payload.
func OK(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Error builds a failure response with a message.
func Error(message string) Response {
	return Response{Success: false, Message: message}
}

// FieldError builds a failure response carrying a field->message map.
func FieldError(message string, fields map[string]string) Response {
	return Response{Success: false, Message: message, Errors: fields}
}
