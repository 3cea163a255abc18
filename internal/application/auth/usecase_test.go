package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/stock-api/internal/application/auth"
	"github.com/invorya/stock-api/internal/application/dto"
	"github.com/invorya/stock-api/internal/domain"
	"github.com/invorya/stock-api/internal/domain/entity"
	pkgjwt "github.com/invorya/stock-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake en memoria del repositorio de usuarios
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byEmail map[string]*entity.User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User), nextID: 1}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	u.ID = r.nextID
	r.nextID++
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByID(id int64) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.byEmail[email], nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	r.byEmail[u.Email] = u
	return nil
}

func newTestUseCase(repo *fakeUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		ExpMinutes: 60,
		Issuer:     "stock-api-test",
	})
}

func register(t *testing.T, uc *auth.AuthUseCase, email string) *dto.AuthResponse {
	t.Helper()
	out, err := uc.Register(dto.RegisterRequest{
		Email:    email,
		Password: "secreto123",
		Name:     "Ana",
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaUsuarioNoVerificado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo)

	out := register(t, uc, "Ana@Almacen.PT")

	require.NotNil(t, out.User)
	assert.Equal(t, "ana@almacen.pt", out.User.Email, "el email debe normalizarse a minúsculas")
	assert.False(t, out.User.Verified, "el usuario nuevo nace sin verificar")

	stored := repo.byEmail["ana@almacen.pt"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto123", stored.PasswordHash, "la password nunca se guarda en claro")
	require.NotNil(t, stored.VerificationCode)
	assert.Len(t, *stored.VerificationCode, 6, "el código debe ser de 6 dígitos")
	require.NotNil(t, stored.VerificationCodeExpiry)
	assert.True(t, stored.VerificationCodeExpiry.After(time.Now()), "el código debe tener expiración futura")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo)
	register(t, uc, "ana@almacen.pt")

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@almacen.pt", Password: "otra", Name: "Ana"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CuentaSinVerificar_Forbidden(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo)
	register(t, uc, "ana@almacen.pt")

	_, err := uc.Login(dto.LoginRequest{Email: "ana@almacen.pt", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "sin verificar no se puede iniciar sesión")
}

// Flujo completo: registro → verificación con el código → login con JWT válido.
func TestVerifyCode_YLogin(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo)
	register(t, uc, "ana@almacen.pt")

	code := *repo.byEmail["ana@almacen.pt"].VerificationCode
	out, err := uc.VerifyCode(dto.VerifyCodeRequest{Email: "ana@almacen.pt", Code: code})
	require.NoError(t, err)
	require.NotNil(t, out.User)
	assert.True(t, out.User.Verified)
	assert.Nil(t, repo.byEmail["ana@almacen.pt"].VerificationCode, "el código usado debe limpiarse")

	login, err := uc.Login(dto.LoginRequest{Email: "ana@almacen.pt", Password: "secreto123"})
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)

	userID, email, err := pkgjwt.Parse("test-secret-key-for-unit-tests", login.Token)
	require.NoError(t, err)
	assert.Equal(t, login.User.ID, userID)
	assert.Equal(t, "ana@almacen.pt", email)
}

func TestVerifyCode_CodigoIncorrecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo)
	register(t, uc, "ana@almacen.pt")

	_, err := uc.VerifyCode(dto.VerifyCodeRequest{Email: "ana@almacen.pt", Code: "000000"})
	if repo.byEmail["ana@almacen.pt"].VerificationCode != nil && *repo.byEmail["ana@almacen.pt"].VerificationCode == "000000" {
		t.Skip("colisión improbable con el código generado")
	}
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, repo.byEmail["ana@almacen.pt"].Verified)
}

func TestVerifyCode_CodigoExpirado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo)
	register(t, uc, "ana@almacen.pt")

	user := repo.byEmail["ana@almacen.pt"]
	past := time.Now().UTC().Add(-time.Hour)
	user.VerificationCodeExpiry = &past

	_, err := uc.VerifyCode(dto.VerifyCodeRequest{Email: "ana@almacen.pt", Code: *user.VerificationCode})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_PasswordIncorrecta_NoRevelaExistencia(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo)
	register(t, uc, "ana@almacen.pt")

	_, errBadPass := uc.Login(dto.LoginRequest{Email: "ana@almacen.pt", Password: "incorrecta"})
	_, errNoUser := uc.Login(dto.LoginRequest{Email: "nadie@almacen.pt", Password: "incorrecta"})

	assert.ErrorIs(t, errBadPass, domain.ErrUnauthorized)
	assert.ErrorIs(t, errNoUser, domain.ErrUnauthorized,
		"email inexistente y password incorrecta deben devolver el mismo error")
}

func TestResendCode_RegeneraCodigo(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo)
	register(t, uc, "ana@almacen.pt")

	before := *repo.byEmail["ana@almacen.pt"].VerificationCode
	out, err := uc.ResendCode(dto.ResendCodeRequest{Email: "ana@almacen.pt"})
	require.NoError(t, err)
	assert.Contains(t, out.Message, *repo.byEmail["ana@almacen.pt"].VerificationCode)
	_ = before // puede coincidir por azar; solo validamos que siga habiendo código vigente
	require.NotNil(t, repo.byEmail["ana@almacen.pt"].VerificationCodeExpiry)
}

func TestMe_UsuarioInexistente(t *testing.T) {
	uc := newTestUseCase(newFakeUserRepo())

	_, err := uc.Me(99)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
