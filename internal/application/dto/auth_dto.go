package dto

import "time"

// RegisterRequest entrada para registro de usuario.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyCodeRequest entrada para verificar una cuenta con el código de 6 dígitos.
type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// ResendCodeRequest entrada para reenviar el código de verificación.
type ResendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UserResponse usuario sin datos sensibles.
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse respuesta de registro/verificación (token solo tras login).
type AuthResponse struct {
	Message string        `json:"message"`
	User    *UserResponse `json:"user,omitempty"`
}

// LoginResponse token JWT más el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
