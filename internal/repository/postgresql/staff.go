package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"golang.org/x/crypto/bcrypt"

	"gitlab.ozon.dev/ecom/returns/internal/db"
	"gitlab.ozon.dev/ecom/returns/internal/repository"
	"gitlab.ozon.dev/ecom/returns/internal/storage"
)

type StaffRepo struct {
	db db.DB
}

func NewStaffRepo(db db.DB) storage.StaffRepository {
	return &StaffRepo{db: db}
}

func (r *StaffRepo) CreateStaff(ctx context.Context, username, password, role string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		"INSERT INTO staff_users (username, password, role) VALUES ($1, $2, $3)",
		username, string(hashedPassword), role)
	return err
}

func (r *StaffRepo) GetByUsername(ctx context.Context, username string) (*repository.StaffUser, error) {
	var user repository.StaffUser
	err := r.db.Get(ctx, &user, "SELECT * FROM staff_users WHERE username = $1", username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ValidateStaff checks credentials and returns the matching user so callers
// can read the role. A bad password and a missing user both come back as
// ErrObjectNotFound.
func (r *StaffRepo) ValidateStaff(ctx context.Context, username, password string) (*repository.StaffUser, error) {
	user, err := r.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, repository.ErrObjectNotFound
	}
	return user, nil
}
