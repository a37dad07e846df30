package dto

// Envelope is the uniform response shape: status is "success", "fail" (4xx)
// or "error" (5xx).
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Success builds a success envelope.
func Success(message string, data any) Envelope {
	return Envelope{Status: "success", Message: message, Data: data}
}

// SuccessWithToken builds a success envelope carrying a bearer token.
func SuccessWithToken(message, token string, data any) Envelope {
	return Envelope{Status: "success", Message: message, Token: token, Data: data}
}
