package dto

// AuthRequest describes login/password payload. Role is honoured on
// registration only.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// ErrorResponse carries a user-visible error message.
type ErrorResponse struct {
	Error string `json:"error"`
}
