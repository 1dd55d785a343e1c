package services

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/huddle/database"
	"github.com/akinalp/huddle/models"
	"github.com/akinalp/huddle/pkg/cache"
	"github.com/akinalp/huddle/repository"
)

// newTestDB, her test için izole, gerçek bir SQLite veritabanı açar.
// Mock repository yerine gerçek DB kullanılır — UNIQUE constraint ve
// cascade davranışları ancak böyle test edilir.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrations)
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	return db
}

// createTestProfile, testlerde kullanılacak bir profil satırı ekler.
func createTestProfile(t *testing.T, db *database.DB, name string) *models.Profile {
	t.Helper()

	profile := &models.Profile{
		UserID: uuid.NewString(),
		Name:   name,
	}
	require.NoError(t, repository.NewSQLiteProfileRepo(db.Conn).Create(context.Background(), profile))

	return profile
}

// newTestCommunityService, DB-bound repository'lerle CommunityService kurar.
func newTestCommunityService(db *database.DB) CommunityService {
	return NewCommunityService(
		db.Conn,
		repository.NewSQLiteCommunityRepo(db.Conn),
		repository.NewSQLiteMembershipRepo(db.Conn),
	)
}

// newTestInviteService, kısa TTL'li cache ile InviteService kurar.
func newTestInviteService(t *testing.T, db *database.DB) InviteService {
	t.Helper()

	previewCache := cache.New[string, *models.InvitePreview](30*time.Second, time.Minute)
	t.Cleanup(previewCache.Close)

	return NewInviteService(
		repository.NewSQLiteCommunityRepo(db.Conn),
		repository.NewSQLiteMembershipRepo(db.Conn),
		previewCache,
	)
}

// newTestViewService, DB-bound repository'lerle ViewService kurar.
func newTestViewService(db *database.DB) ViewService {
	return NewViewService(
		repository.NewSQLiteCommunityRepo(db.Conn),
		repository.NewSQLiteChannelRepo(db.Conn),
		repository.NewSQLiteMembershipRepo(db.Conn),
	)
}
