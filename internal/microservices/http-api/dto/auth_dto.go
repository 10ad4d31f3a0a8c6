package dto

// Data Transfer Objects for authentication requests and responses

// RegisterRequest: payload for user registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest: payload for user login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse: response payload after successful registration
type RegisterResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// AuthResponse: response payload after successful login
type AuthResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"` // seconds
}

// UserResponse: the "whoami" payload
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
