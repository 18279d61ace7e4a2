package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avatarctic/trip-search/internal/core/domain/user"
	"github.com/avatarctic/trip-search/internal/core/ports"
	"github.com/avatarctic/trip-search/internal/infrastructure/db"
	"github.com/sirupsen/logrus"
)

// UserRepository implements the user repository interface on Postgres.
type UserRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(database *db.Database, logger *logrus.Logger) ports.UserRepository {
	return &UserRepository{
		db:     database,
		logger: logger,
	}
}

// FindBySubject retrieves a user by its identity-provider subject.
func (r *UserRepository) FindBySubject(ctx context.Context, subject string) (*user.User, bool, error) {
	var u user.User
	query := `
		SELECT id, subject, email, name, created_at, updated_at
		FROM users
		WHERE subject = $1`

	err := r.db.DB.GetContext(ctx, &u, query, subject)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"subject": subject}).WithError(err).Error("db: failed to find user by subject")
		}
		return nil, false, fmt.Errorf("failed to find user by subject: %w", err)
	}

	return &u, true, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, subject, email, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.DB.ExecContext(ctx, query, u.ID, u.Subject, u.Email, u.Name, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": u.ID, "subject": u.Subject}).WithError(err).Error("db: failed to create user")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"user_id": u.ID, "subject": u.Subject}).Info("db: user created")
	}

	return nil
}

// Update updates an existing user's profile fields.
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET email = $2, name = $3, updated_at = $4
		WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, u.ID, u.Email, u.Name, u.UpdatedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": u.ID}).WithError(err).Error("db: failed to update user")
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user with ID %s not found", u.ID)
	}

	return nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
