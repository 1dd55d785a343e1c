// Package repository — MembershipRepository'nin SQLite implementasyonu.
package repository

import (
	"context"
	"fmt"

	"github.com/akinalp/huddle/database"
	"github.com/akinalp/huddle/models"
	"github.com/akinalp/huddle/pkg"
)

type sqliteMembershipRepo struct {
	db database.TxQuerier
}

// NewSQLiteMembershipRepo, constructor.
func NewSQLiteMembershipRepo(db database.TxQuerier) MembershipRepository {
	return &sqliteMembershipRepo{db: db}
}

func (r *sqliteMembershipRepo) Create(ctx context.Context, membership *models.Membership) error {
	query := `
		INSERT INTO memberships (id, community_id, profile_id, role)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		membership.CommunityID, membership.ProfileID, membership.Role,
	).Scan(&membership.ID, &membership.CreatedAt, &membership.UpdatedAt)

	if err != nil {
		// UNIQUE(community_id, profile_id) — aynı profil ikinci kez
		// eklenemez. Yarışan iki join isteğinden kaybedeni buraya düşer.
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: already a member of this community", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create membership: %w", err)
	}

	return nil
}

func (r *sqliteMembershipRepo) Delete(ctx context.Context, communityID, profileID string) error {
	query := `DELETE FROM memberships WHERE community_id = ? AND profile_id = ?`

	result, err := r.db.ExecContext(ctx, query, communityID, profileID)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
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

func (r *sqliteMembershipRepo) ListByCommunity(ctx context.Context, communityID string) ([]models.MemberWithProfile, error) {
	// Rol sıralaması alfabetik DEĞİL hiyerarşiktir (ADMIN < MODERATOR < GUEST)
	// — CASE ifadesi models.MemberRole.Rank ile aynı sırayı üretir.
	query := `
		SELECT m.id, m.community_id, m.profile_id, m.role, m.created_at, m.updated_at,
		       p.id, p.user_id, p.name, p.avatar_url, p.email, p.created_at, p.updated_at
		FROM memberships m
		INNER JOIN profiles p ON p.id = m.profile_id
		WHERE m.community_id = ?
		ORDER BY CASE m.role
		           WHEN 'ADMIN' THEN 0
		           WHEN 'MODERATOR' THEN 1
		           ELSE 2
		         END ASC,
		         m.created_at ASC, m.rowid ASC`

	rows, err := r.db.QueryContext(ctx, query, communityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var members []models.MemberWithProfile
	for rows.Next() {
		var m models.MemberWithProfile
		if err := rows.Scan(
			&m.Membership.ID, &m.CommunityID, &m.ProfileID, &m.Role,
			&m.Membership.CreatedAt, &m.Membership.UpdatedAt,
			&m.Profile.ID, &m.Profile.UserID, &m.Profile.Name,
			&m.Profile.AvatarURL, &m.Profile.Email,
			&m.Profile.CreatedAt, &m.Profile.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating membership rows: %w", err)
	}

	return members, nil
}
