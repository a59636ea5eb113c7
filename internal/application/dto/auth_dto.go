package dto

import "time"

// RegisterRequest body para POST /api/auth/register.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password"`
	Role      string `json:"role,omitempty"` // default OTHER; solo un admin puede elevarlo después
}

// LoginRequest body para POST /api/auth/login (teléfono + contraseña).
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// RefreshRequest body para POST /api/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LoginResponse tokens emitidos + usuario.
type LoginResponse struct {
	AccessToken     string       `json:"access_token"`
	RefreshToken    string       `json:"refresh_token"`
	AccessTokenExp  time.Time    `json:"access_token_exp"`
	RefreshTokenExp time.Time    `json:"refresh_token_exp"`
	User            UserResponse `json:"user"`
}

// RefreshResponse nuevo access token.
type RefreshResponse struct {
	AccessToken    string    `json:"access_token"`
	AccessTokenExp time.Time `json:"access_token_exp"`
}

// UpdateUserRequest body para PUT /api/users/:id.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Role      *string `json:"role,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// UserResponse usuario en respuestas (nunca incluye el hash).
type UserResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
