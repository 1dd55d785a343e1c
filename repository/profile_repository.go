// Package repository, veritabanı erişim katmanını tanımlar.
//
// Repository Pattern: veritabanı işlemlerini (CRUD) soyutlayan tasarım
// kalıbıdır. Service katmanı doğrudan SQL yazmaz — repository interface'i
// üzerinden çalışır.
//
// Neden interface?
// 1. Test: mock repository yazarak DB olmadan test edebilirsin
// 2. Esneklik: SQLite'tan PostgreSQL'e geçiş sadece yeni implementasyon demektir
// 3. Dependency Inversion: service concrete struct'a değil interface'e bağımlı
package repository

import (
	"context"

	"github.com/akinalp/huddle/models"
)

// ProfileRepository, profil veritabanı işlemleri için interface.
type ProfileRepository interface {
	// Create, yeni bir profil satırı ekler.
	// user_id zaten varsa pkg.ErrAlreadyExists döner — çağıran taraf
	// bunu "başkası az önce oluşturdu" olarak yorumlayıp yeniden okur.
	Create(ctx context.Context, profile *models.Profile) error

	// GetByUserID, dış kimlik referansıyla profil döner.
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)

	// GetByID, iç profil ID'siyle profil döner.
	GetByID(ctx context.Context, id string) (*models.Profile, error)
}
