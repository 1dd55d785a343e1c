// Package repository — CommunityRepository interface.
package repository

import (
	"context"

	"github.com/akinalp/huddle/models"
)

// CommunityRepository, topluluk veritabanı işlemleri için interface.
//
// Owner-scoped operasyonlar (RotateInviteCode, Update, Delete) eşleşmeyi
// id + owner_profile_id ÇİFTİ üzerinden yapar: topluluk yoksa da, istek
// sahibinin değilse de sonuç aynıdır — pkg.ErrNotFound. "Yok" ile "senin
// değil" bilinçli olarak ayırt edilmez.
type CommunityRepository interface {
	// Create, yeni bir topluluk satırı ekler.
	// invite_code çakışırsa pkg.ErrAlreadyExists döner — çağıran yeni kod
	// üretip tekrar dener.
	Create(ctx context.Context, community *models.Community) error

	// GetByID, topluluğu ID ile döner.
	GetByID(ctx context.Context, communityID string) (*models.Community, error)

	// GetByInviteCode, GÜNCEL davet kodu verilen topluluğu döner.
	// Rotate edilmiş eski kodlar hiçbir satırla eşleşmez.
	GetByInviteCode(ctx context.Context, code string) (*models.Community, error)

	// GetByInviteCodeForMember, davet kodu eşleşen VE verilen profilin
	// zaten üyesi olduğu topluluğu döner. Join akışının idempotent
	// short-circuit sorgusudur.
	GetByInviteCodeForMember(ctx context.Context, code, profileID string) (*models.Community, error)

	// RotateInviteCode, davet kodunu owner-scoped olarak değiştirir.
	RotateInviteCode(ctx context.Context, communityID, ownerProfileID, newCode string) error

	// Update, isim/görseli owner-scoped olarak günceller.
	Update(ctx context.Context, community *models.Community) error

	// Delete, topluluğu owner-scoped olarak siler.
	// Kanallar ve üyelikler FK cascade ile birlikte silinir.
	Delete(ctx context.Context, communityID, ownerProfileID string) error

	// ListByProfile, profilin üyesi olduğu toplulukları döner.
	ListByProfile(ctx context.Context, profileID string) ([]models.Community, error)

	// CountMembers, topluluğun üye sayısını döner (davet ön izlemesi için).
	CountMembers(ctx context.Context, communityID string) (int, error)
}
