package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alojamientos-api/internal/application/auth"
	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
	"github.com/jhoicas/Alojamientos-api/internal/domain"
	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/testutil/memstore"
	pkgjwt "github.com/jhoicas/Alojamientos-api/pkg/jwt"
)

const secret = "auth-test-secret"

func newAuth(t *testing.T) (*auth.AuthUseCase, *entity.Unit) {
	t.Helper()
	s := memstore.New()
	unit := s.SeedUnit("U1")
	uc := auth.NewAuthUseCase(s.Users(), s.Units(), auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
	return uc, unit
}

func TestRegistroYLogin(t *testing.T) {
	ctx := context.Background()
	uc, unit := newAuth(t)

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@obra.test", Password: "secreto-123", UnitID: unit.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAlmacenista, user.Role, "rol por defecto")
	assert.Equal(t, "ana@obra.test", user.Name)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ANA@obra.test", Password: "secreto-123"})
	require.NoError(t, err)

	userID, unitID, role, err := pkgjwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, unit.ID, unitID)
	assert.Equal(t, entity.RoleAlmacenista, role)
}

func TestRegistro_EmailRepetido(t *testing.T) {
	ctx := context.Background()
	uc, unit := newAuth(t)
	in := dto.RegisterRequest{Email: "a@b.test", Password: "secreto-123", UnitID: unit.ID, Role: entity.RoleSupervisor}

	_, err := uc.RegisterUser(ctx, in)
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegistro_UnidadInexistente(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "a@b.test", Password: "secreto-123", UnitID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogin_Rechazos(t *testing.T) {
	ctx := context.Background()
	uc, unit := newAuth(t)
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.test", Password: "secreto-123", UnitID: unit.ID})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.test", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@b.test", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
