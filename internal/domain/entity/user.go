package entity

import "time"

// User representa un utilizador del sistema. El email se guarda en minúsculas.
// Una cuenta sin verificar no puede hacer login.
type User struct {
	ID                     int64
	Email                  string
	PasswordHash           string // bcrypt, nunca en claro después de persistir
	Name                   string
	Verified               bool
	VerificationCode       *string // 6 dígitos, nil una vez verificada
	VerificationCodeExpiry *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
