// Package auth cubre el alta de la cuenta administradora del panel.
package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/cromados/barberia/internal/httperr"
	"github.com/cromados/barberia/internal/models"
)

type Repository interface {
	CountAdmins(ctx context.Context) (int64, error)
	CreateAdmin(ctx context.Context, u *models.AdminUser) error
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// ======================================================
// USE CASE
// ======================================================

// RegisterAdmin da de alta la primera cuenta del panel. El registro está
// abierto únicamente mientras no exista ningún admin: arranca el deploy
// nuevo y se cierra solo.
type RegisterAdmin struct {
	repo Repository
}

func NewRegisterAdmin(repo Repository) *RegisterAdmin {
	return &RegisterAdmin{repo: repo}
}

func (uc *RegisterAdmin) Execute(
	ctx context.Context,
	in RegisterInput,
) (*models.AdminUser, error) {

	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if name == "" || email == "" {
		return nil, httperr.ErrBusiness("invalid_request")
	}
	if len(in.Password) < 8 {
		return nil, httperr.ErrBusiness("weak_password")
	}

	count, err := uc.repo.CountAdmins(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, httperr.ErrBusiness("registration_closed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.AdminUser{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         "admin",
	}
	if err := uc.repo.CreateAdmin(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
