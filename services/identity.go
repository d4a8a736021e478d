package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/LovationAdmin/finanzas/models"
	"github.com/LovationAdmin/finanzas/utils"
)

// IdentityProvider resolves a name to its role. Implementations may verify
// credentials; UserService does not, any caller can claim any name.
type IdentityProvider interface {
	Find(ctx context.Context, name string) (models.User, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
}

type UserService struct {
	db *sql.DB
}

var _ IdentityProvider = (*UserService)(nil)

func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Find returns the user with the given name or ErrNotFound.
func (s *UserService) Find(ctx context.Context, name string) (models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `SELECT nombre, rol FROM usuarios WHERE nombre = $1`, name).
		Scan(&user.Name, &user.Role)
	if errors.Is(err, sql.ErrNoRows) {
		utils.LogIdentityAction("login", name, false)
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user: %w", err)
	}

	utils.LogIdentityAction("login", name, true)
	return user, nil
}

// Register stores a new name/role pair. An existing name yields ErrConflict
// and leaves the stored role untouched.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM usuarios WHERE nombre = $1)`, nullable(req.Name)).Scan(&exists)
	if err != nil {
		return models.User{}, fmt.Errorf("check user: %w", err)
	}
	if exists {
		utils.LogIdentityAction("register", deref(req.Name), false)
		return models.User{}, ErrConflict
	}

	var user models.User
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO usuarios (nombre, rol)
		VALUES ($1, $2)
		RETURNING nombre, rol
	`, nullable(req.Name), nullable(req.Role)).Scan(&user.Name, &user.Role)
	if isUniqueViolation(err) {
		// lost a race with a concurrent registration
		return models.User{}, ErrConflict
	}
	if err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	utils.LogIdentityAction("register", user.Name, true)
	return user, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
