package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/invorya/stock-api/internal/application/dto"
	"github.com/invorya/stock-api/internal/domain"
	"github.com/invorya/stock-api/internal/domain/entity"
	"github.com/invorya/stock-api/internal/domain/repository"
	"github.com/invorya/stock-api/pkg/jwt"
)

// Validez del código de verificación de cuenta.
const verificationCodeTTL = 24 * time.Hour

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registro, verificación de cuenta y login.
// El envío del código por email es responsabilidad de un colaborador externo;
// aquí el código se devuelve en el mensaje de respuesta.
type AuthUseCase struct {
	users  repository.UserRepository
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, jwtCfg: jwtCfg}
}

// Register crea un usuario no verificado: hashea la password con bcrypt y
// genera un código de 6 dígitos válido 24h. Email duplicado -> ErrEmailAlreadyExists.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(in.Email)
	existing, err := uc.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	code, err := generateVerificationCode()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	expiry := now.Add(verificationCodeTTL)
	user := &entity.User{
		Email:                  email,
		PasswordHash:           string(hash),
		Name:                   strings.TrimSpace(in.Name),
		Verified:               false,
		VerificationCode:       &code,
		VerificationCodeExpiry: &expiry,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}
	u := toUserResponse(user)
	return &dto.AuthResponse{
		Message: fmt.Sprintf("registro efectuado. Código de verificación: %s", code),
		User:    &u,
	}, nil
}

// Login verifica email/password, exige cuenta verificada y genera el JWT.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmail(normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized // no revelar si el email existe
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Verified {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

// VerifyCode valida el código de 6 dígitos y marca la cuenta como verificada.
func (uc *AuthUseCase) VerifyCode(in dto.VerifyCodeRequest) (*dto.AuthResponse, error) {
	user, err := uc.users.GetByEmail(normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Verified {
		return &dto.AuthResponse{Message: "la cuenta ya está verificada"}, nil
	}
	if user.VerificationCode == nil || *user.VerificationCode != in.Code {
		return nil, domain.ErrInvalidInput
	}
	if user.VerificationCodeExpiry == nil || time.Now().UTC().After(*user.VerificationCodeExpiry) {
		return nil, domain.ErrInvalidInput
	}
	user.Verified = true
	user.VerificationCode = nil
	user.VerificationCodeExpiry = nil
	user.UpdatedAt = time.Now().UTC()
	if err := uc.users.Update(user); err != nil {
		return nil, err
	}
	u := toUserResponse(user)
	return &dto.AuthResponse{Message: "cuenta verificada con éxito", User: &u}, nil
}

// ResendCode regenera el código de verificación de una cuenta pendiente.
func (uc *AuthUseCase) ResendCode(in dto.ResendCodeRequest) (*dto.AuthResponse, error) {
	user, err := uc.users.GetByEmail(normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Verified {
		return &dto.AuthResponse{Message: "la cuenta ya está verificada"}, nil
	}
	code, err := generateVerificationCode()
	if err != nil {
		return nil, err
	}
	expiry := time.Now().UTC().Add(verificationCodeTTL)
	user.VerificationCode = &code
	user.VerificationCodeExpiry = &expiry
	user.UpdatedAt = time.Now().UTC()
	if err := uc.users.Update(user); err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Message: fmt.Sprintf("nuevo código de verificación: %s", code),
	}, nil
}

// Me devuelve el usuario autenticado a partir del id del token.
func (uc *AuthUseCase) Me(userID int64) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	u := toUserResponse(user)
	return &u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateVerificationCode código aleatorio de 6 dígitos (crypto/rand).
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt,
	}
}
