package dto

// Response is the envelope every endpoint answers with. Business failures
// keep HTTP 200 and carry success=false plus a customer-facing message.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// OK builds a success envelope.
func OK(message string) Response {
	return Response{Success: true, Message: message}
}

// Fail builds a failure envelope.
func Fail(message string) Response {
	return Response{Success: false, Message: message}
}
