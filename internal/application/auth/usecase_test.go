package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/rectificadora-api/internal/application/auth"
	"github.com/jhoicas/rectificadora-api/internal/application/dto"
	"github.com/jhoicas/rectificadora-api/internal/domain"
	pkgjwt "github.com/jhoicas/rectificadora-api/pkg/jwt"
)

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("motor123"), bcrypt.MinCost)
	require.NoError(t, err)
	return auth.NewAuthUseCase(
		auth.Credentials{Usuario: "taller", PasswordHash: string(hash)},
		auth.JWTConfig{Secret: "s3cret", ExpMinutes: 30, Issuer: "test"},
	)
}

func TestLogin_CredencialesValidas(t *testing.T) {
	out, err := newAuth(t).Login(dto.LoginRequest{Usuario: "taller", Password: "motor123"})
	require.NoError(t, err)
	assert.Equal(t, 1800, out.ExpiresIn)

	usuario, role, err := pkgjwt.Parse("s3cret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, "taller", usuario)
	assert.Equal(t, auth.RoleAdmin, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuth(t)

	_, err := uc.Login(dto.LoginRequest{Usuario: "taller", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Usuario: "otro", Password: "motor123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
