package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/netbill-api/internal/application/dto"
	"github.com/jhoicas/netbill-api/internal/domain"
	"github.com/jhoicas/netbill-api/internal/domain/entity"
	"github.com/jhoicas/netbill-api/internal/domain/repository"
	"github.com/jhoicas/netbill-api/pkg/jwt"
)

var testJWT = JWTConfig{Secret: "clave-de-prueba-suficientemente-larga", Issuer: "netbill-api"}

type fakeUserRepo struct {
	users []*entity.User
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users = append(r.users, u)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByPhone(_ context.Context, phone string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ExistsEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) List(_ context.Context, _, _ int) ([]*entity.User, error) {
	return r.users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	for i, existing := range r.users {
		if existing.ID == u.ID {
			r.users[i] = u
			return nil
		}
	}
	return domain.ErrNotFound
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		FirstName: "Karim",
		LastName:  "Hossain",
		Phone:     "01712345678",
		Email:     "karim@example.com",
		Password:  "contraseña-larga",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaUsuarioConHashYRolPorDefecto(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := NewAuthUseCase(repo, testJWT)

	resp, err := uc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.Equal(t, "Karim", resp.FirstName)
	assert.Equal(t, entity.RoleOther, resp.Role, "sin rol explícito cae en OTHER")
	assert.Equal(t, entity.StatusActive, resp.Status)

	require.Len(t, repo.users, 1)
	stored := repo.users[0]
	assert.NotEqual(t, "contraseña-larga", stored.PasswordHash, "la contraseña jamás se guarda plana")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("contraseña-larga")))
}

func TestRegister_TelefonoDuplicado(t *testing.T) {
	repo := &fakeUserRepo{users: []*entity.User{{ID: "u1", Phone: "01712345678"}}}
	uc := NewAuthUseCase(repo, testJWT)

	_, err := uc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := &fakeUserRepo{users: []*entity.User{{ID: "u1", Phone: "01899999999", Email: "karim@example.com"}}}
	uc := NewAuthUseCase(repo, testJWT)

	_, err := uc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegister_RolInvalido(t *testing.T) {
	uc := NewAuthUseCase(&fakeUserRepo{}, testJWT)

	req := registerRequest()
	req.Role = "ROOT"
	_, err := uc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_CamposObligatorios(t *testing.T) {
	uc := NewAuthUseCase(&fakeUserRepo{}, testJWT)

	req := registerRequest()
	req.Phone = ""
	_, err := uc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = registerRequest()
	req.Password = ""
	_, err = uc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login y Refresh
// ──────────────────────────────────────────────────────────────────────────────

func registeredUser(t *testing.T, uc *AuthUseCase) dto.RegisterRequest {
	t.Helper()
	req := registerRequest()
	_, err := uc.Register(context.Background(), req)
	require.NoError(t, err)
	return req
}

func TestLogin_EmiteParDeTokens(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := NewAuthUseCase(repo, testJWT)
	req := registeredUser(t, uc)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Phone: req.Phone, Password: req.Password})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, req.Phone, resp.User.Phone)

	claims, err := jwt.Parse(testJWT.Secret, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, jwt.TokenTypeAccess, claims.TokenType)
	assert.Equal(t, repo.users[0].ID, claims.UserID)
}

func TestLogin_TelefonoDesconocido(t *testing.T) {
	uc := NewAuthUseCase(&fakeUserRepo{}, testJWT)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Phone: "01800000000", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_ContrasenaIncorrecta(t *testing.T) {
	uc := NewAuthUseCase(&fakeUserRepo{}, testJWT)
	req := registeredUser(t, uc)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Phone: req.Phone, Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivoBloqueado(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := NewAuthUseCase(repo, testJWT)
	req := registeredUser(t, uc)
	repo.users[0].Status = entity.StatusInactive

	_, err := uc.Login(context.Background(), dto.LoginRequest{Phone: req.Phone, Password: req.Password})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRefresh_EmiteNuevoAccess(t *testing.T) {
	uc := NewAuthUseCase(&fakeUserRepo{}, testJWT)
	req := registeredUser(t, uc)

	login, err := uc.Login(context.Background(), dto.LoginRequest{Phone: req.Phone, Password: req.Password})
	require.NoError(t, err)

	resp, err := uc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	claims, err := jwt.Parse(testJWT.Secret, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, jwt.TokenTypeAccess, claims.TokenType)
}

func TestRefresh_AccessTokenRechazado(t *testing.T) {
	uc := NewAuthUseCase(&fakeUserRepo{}, testJWT)
	req := registeredUser(t, uc)

	login, err := uc.Login(context.Background(), dto.LoginRequest{Phone: req.Phone, Password: req.Password})
	require.NoError(t, err)

	_, err = uc.Refresh(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
