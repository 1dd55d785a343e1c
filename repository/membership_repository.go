// Package repository — MembershipRepository interface.
package repository

import (
	"context"

	"github.com/akinalp/huddle/models"
)

// MembershipRepository, üyelik veritabanı işlemleri için interface.
type MembershipRepository interface {
	// Create, yeni bir üyelik satırı ekler.
	// (community_id, profile_id) çifti zaten varsa pkg.ErrAlreadyExists
	// döner — join akışı bunu "zaten üye" başarısı olarak yorumlar.
	Create(ctx context.Context, membership *models.Membership) error

	// Delete, üyeliği kaldırır (topluluktan ayrılma).
	Delete(ctx context.Context, communityID, profileID string) error

	// ListByCommunity, topluluğun TÜM üyelerini profilleriyle birlikte,
	// role göre artan sırada (ADMIN önce) döner.
	ListByCommunity(ctx context.Context, communityID string) ([]models.MemberWithProfile, error)
}
