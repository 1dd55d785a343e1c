// Package repository — SQLite implementasyonlarının ortak yardımcıları.
package repository

import (
	"database/sql"
	"errors"
	"strings"
)

// isUniqueViolation, hatanın bir UNIQUE constraint ihlali olup olmadığını
// kontrol eder.
//
// modernc.org/sqlite driver'ı constraint hataları için ayrı bir error tipi
// export etmez — mesaj metnine bakmak pratikteki tek yol. Üç UNIQUE
// constraint'imiz (profiles.user_id, communities.invite_code,
// memberships(community_id, profile_id)) buradan yakalanır.
func isUniqueViolation(err error) bool {
	return err != nil && !errors.Is(err, sql.ErrNoRows) &&
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
