package dto

import "github.com/dharmawan/portledger/internal/core/domain"

// LoginRequest carries the credentials for /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the opaque refresh token for /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthUserResponse is the sanitized user payload embedded in auth responses.
type AuthUserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// AuthSessionResponse is returned by login and refresh.
type AuthSessionResponse struct {
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken"`
	ExpiresIn    int              `json:"expiresIn"`
	User         AuthUserResponse `json:"user"`
}

// ToAuthUserResponse converts a domain.User to its auth payload form.
func ToAuthUserResponse(u *domain.User) AuthUserResponse {
	return AuthUserResponse{
		ID:       u.UserID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
