package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// RegisterRequest represents a user registration request. AdminCode is
// optional; a matching code grants the administrator role level.
type RegisterRequest struct {
	StudentID string  `json:"studentId" binding:"required,student_id"`
	Username  string  `json:"username" binding:"required,min=2,max=32"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	Wechat    *string `json:"wechat,omitempty"`
	RoomID    *int64  `json:"roomId,omitempty"`
	AdminCode string  `json:"adminCode,omitempty"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}
