// Package repository — ProfileRepository'nin SQLite implementasyonu.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/huddle/database"
	"github.com/akinalp/huddle/models"
	"github.com/akinalp/huddle/pkg"
)

// sqliteProfileRepo, ProfileRepository interface'inin SQLite implementasyonu.
//
// database.TxQuerier kabul eder: normal operasyonlarda *sql.DB,
// transaction içinde *sql.Tx geçilebilir.
type sqliteProfileRepo struct {
	db database.TxQuerier
}

// NewSQLiteProfileRepo, constructor.
func NewSQLiteProfileRepo(db database.TxQuerier) ProfileRepository {
	return &sqliteProfileRepo{db: db}
}

func (r *sqliteProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (id, user_id, name, avatar_url, email)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		profile.UserID, profile.Name, profile.AvatarURL, profile.Email,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		// UNIQUE constraint → aynı dış kimlik için profil zaten var.
		// Eşzamanlı ilk isteklerde normal bir durumdur, hata mesajı
		// çağıranın errors.Is ile ayırt edebilmesi için sarılır.
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: profile for this identity already exists", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

func (r *sqliteProfileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	query := `
		SELECT id, user_id, name, avatar_url, email, created_at, updated_at
		FROM profiles WHERE user_id = ?`

	profile := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.Name, &profile.AvatarURL,
		&profile.Email, &profile.CreatedAt, &profile.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by user id: %w", err)
	}

	return profile, nil
}

func (r *sqliteProfileRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `
		SELECT id, user_id, name, avatar_url, email, created_at, updated_at
		FROM profiles WHERE id = ?`

	profile := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&profile.ID, &profile.UserID, &profile.Name, &profile.AvatarURL,
		&profile.Email, &profile.CreatedAt, &profile.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}
