// Package repository — CommunityRepository'nin SQLite implementasyonu.
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

type sqliteCommunityRepo struct {
	db database.TxQuerier
}

// NewSQLiteCommunityRepo, constructor.
func NewSQLiteCommunityRepo(db database.TxQuerier) CommunityRepository {
	return &sqliteCommunityRepo{db: db}
}

// communityColumns, tüm SELECT sorgularında kullanılan kolon listesi.
// Scan sırası scanCommunity ile birebir aynı olmalı.
const communityColumns = `id, owner_profile_id, name, image_url, invite_code, created_at, updated_at`

func scanCommunity(row *sql.Row) (*models.Community, error) {
	c := &models.Community{}
	err := row.Scan(
		&c.ID, &c.OwnerProfileID, &c.Name, &c.ImageURL,
		&c.InviteCode, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan community: %w", err)
	}
	return c, nil
}

func (r *sqliteCommunityRepo) Create(ctx context.Context, community *models.Community) error {
	query := `
		INSERT INTO communities (id, owner_profile_id, name, image_url, invite_code)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		community.OwnerProfileID, community.Name,
		community.ImageURL, community.InviteCode,
	).Scan(&community.ID, &community.CreatedAt, &community.UpdatedAt)

	if err != nil {
		// invite_code UNIQUE — çakışma astronomik olasılıkta ama mümkün.
		// Service yeni kod üretip tekrar dener.
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invite code already in use", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create community: %w", err)
	}

	return nil
}

func (r *sqliteCommunityRepo) GetByID(ctx context.Context, communityID string) (*models.Community, error) {
	query := `SELECT ` + communityColumns + ` FROM communities WHERE id = ?`
	return scanCommunity(r.db.QueryRowContext(ctx, query, communityID))
}

func (r *sqliteCommunityRepo) GetByInviteCode(ctx context.Context, code string) (*models.Community, error) {
	query := `SELECT ` + communityColumns + ` FROM communities WHERE invite_code = ?`
	return scanCommunity(r.db.QueryRowContext(ctx, query, code))
}

func (r *sqliteCommunityRepo) GetByInviteCodeForMember(ctx context.Context, code, profileID string) (*models.Community, error) {
	// Davet kodu eşleşen ve profilin zaten üyesi olduğu topluluk.
	// Join akışı önce bunu dener: bulunursa üyelik oluşturmadan döner.
	query := `
		SELECT c.id, c.owner_profile_id, c.name, c.image_url, c.invite_code, c.created_at, c.updated_at
		FROM communities c
		INNER JOIN memberships m ON m.community_id = c.id
		WHERE c.invite_code = ? AND m.profile_id = ?`

	return scanCommunity(r.db.QueryRowContext(ctx, query, code, profileID))
}

func (r *sqliteCommunityRepo) RotateInviteCode(ctx context.Context, communityID, ownerProfileID, newCode string) error {
	// WHERE id AND owner_profile_id: owner olmayan istek sahibi için
	// 0 satır eşleşir → ErrNotFound. Varlık bilgisi sızdırılmaz.
	query := `
		UPDATE communities
		SET invite_code = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND owner_profile_id = ?`

	result, err := r.db.ExecContext(ctx, query, newCode, communityID, ownerProfileID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invite code already in use", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to rotate invite code: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteCommunityRepo) Update(ctx context.Context, community *models.Community) error {
	query := `
		UPDATE communities
		SET name = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND owner_profile_id = ?`

	result, err := r.db.ExecContext(ctx, query,
		community.Name, community.ImageURL,
		community.ID, community.OwnerProfileID,
	)
	if err != nil {
		return fmt.Errorf("failed to update community: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteCommunityRepo) Delete(ctx context.Context, communityID, ownerProfileID string) error {
	query := `DELETE FROM communities WHERE id = ? AND owner_profile_id = ?`

	result, err := r.db.ExecContext(ctx, query, communityID, ownerProfileID)
	if err != nil {
		return fmt.Errorf("failed to delete community: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteCommunityRepo) ListByProfile(ctx context.Context, profileID string) ([]models.Community, error) {
	query := `
		SELECT c.id, c.owner_profile_id, c.name, c.image_url, c.invite_code, c.created_at, c.updated_at
		FROM communities c
		INNER JOIN memberships m ON m.community_id = c.id
		WHERE m.profile_id = ?
		ORDER BY m.created_at ASC, m.rowid ASC`

	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list communities: %w", err)
	}
	defer rows.Close()

	var communities []models.Community
	for rows.Next() {
		var c models.Community
		if err := rows.Scan(
			&c.ID, &c.OwnerProfileID, &c.Name, &c.ImageURL,
			&c.InviteCode, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan community row: %w", err)
		}
		communities = append(communities, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating community rows: %w", err)
	}

	return communities, nil
}

func (r *sqliteCommunityRepo) CountMembers(ctx context.Context, communityID string) (int, error) {
	query := `SELECT COUNT(*) FROM memberships WHERE community_id = ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, communityID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}

	return count, nil
}
