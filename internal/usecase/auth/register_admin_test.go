package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cromados/barberia/internal/httperr"
	"github.com/cromados/barberia/internal/models"
)

type fakeRepo struct {
	admins  int64
	created *models.AdminUser
}

func (f *fakeRepo) CountAdmins(_ context.Context) (int64, error) {
	return f.admins, nil
}

func (f *fakeRepo) CreateAdmin(_ context.Context, u *models.AdminUser) error {
	u.ID = 1
	f.created = u
	return nil
}

func TestRegisterAdmin_BootstrapsFirstAccount(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewRegisterAdmin(repo)

	user, err := uc.Execute(context.Background(), RegisterInput{
		Name:     "Dueño",
		Email:    "  Dueno@Barberia.com ",
		Password: "secreto123",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.created)

	assert.Equal(t, "dueno@barberia.com", user.Email)
	assert.Equal(t, "admin", user.Role)

	// La contraseña nunca se guarda en claro.
	assert.NotEqual(t, "secreto123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash), []byte("secreto123"),
	))
}

func TestRegisterAdmin_ClosedOnceAnAdminExists(t *testing.T) {
	repo := &fakeRepo{admins: 1}
	uc := NewRegisterAdmin(repo)

	_, err := uc.Execute(context.Background(), RegisterInput{
		Name:     "Otro",
		Email:    "otro@barberia.com",
		Password: "secreto123",
	})

	assert.Equal(t, "registration_closed", httperr.BusinessCode(err))
	assert.Nil(t, repo.created)
}

func TestRegisterAdmin_ValidatesInput(t *testing.T) {
	uc := NewRegisterAdmin(&fakeRepo{})
	ctx := context.Background()

	_, err := uc.Execute(ctx, RegisterInput{Name: "", Email: "a@b.com", Password: "secreto123"})
	assert.Equal(t, "invalid_request", httperr.BusinessCode(err))

	_, err = uc.Execute(ctx, RegisterInput{Name: "Dueño", Email: "", Password: "secreto123"})
	assert.Equal(t, "invalid_request", httperr.BusinessCode(err))

	_, err = uc.Execute(ctx, RegisterInput{Name: "Dueño", Email: "a@b.com", Password: "corta"})
	assert.Equal(t, "weak_password", httperr.BusinessCode(err))
}
