package model

// LoginRequest represents the credential login parameters
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries the Google ID token
type GoogleLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

// GoogleProfile is the identity returned by the external provider.
type GoogleProfile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}
