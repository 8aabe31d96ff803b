package dto

// RegisterRequest describes the customer sign-up payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest describes login payloads for both customer and seller.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserPayload is the customer profile returned to the UI.
type UserPayload struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Email string           `json:"email"`
	Cart  map[string]int64 `json:"cartItems"`
}

// AuthResponse wraps authentication results.
type AuthResponse struct {
	Response
	User *UserPayload `json:"user,omitempty"`
}
