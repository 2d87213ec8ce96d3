// Package response defines the wire shapes of error bodies.
package response

// ErrorBody carries a machine-readable error message.
type ErrorBody struct {
	Message string `json:"message"`
}

// ErrorResponse is the envelope for validation and server errors:
// {"error":{"message":"..."}}.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error builds an ErrorResponse with the given message.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Message: msg}}
}

// AuthErrorResponse is the flat body returned by the auth gate:
// {"error":"Unauthorized request"}.
type AuthErrorResponse struct {
	Error string `json:"error"`
}

var Unauthorized = AuthErrorResponse{Error: "Unauthorized request"}

// ServerError is the generic body for unexpected faults in production mode.
var ServerError = Error("server error")
