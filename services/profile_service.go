// Package services, business logic katmanını barındırır.
//
// Service Layer Pattern: Handler (HTTP) ile Repository (DB) arasında oturan
// katmandır. Tüm iş kuralları burada yaşar.
//
// Service ASLA http.Request/Response bilmez — sadece domain modelleri alır/verir.
// Service ASLA doğrudan SQL çalıştırmaz — Repository interface'i kullanır.
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/akinalp/huddle/models"
	"github.com/akinalp/huddle/pkg"
	"github.com/akinalp/huddle/repository"
)

// ProfileService, dış kimlik → iç profil çözümlemesi (identity resolver).
//
// Her authenticated istekte çağrılır: auth middleware token'ı doğrular,
// Resolve claim'lerdeki dış kimliği Profile satırına bağlar.
// Profil yoksa lazy oluşturulur — kullanıcı "kayıt olmaz", ilk girişte
// profili kendiliğinden var olur.
type ProfileService interface {
	// Resolve, dış kimliği Profile'a çözümler, yoksa oluşturur.
	// Aynı kimlik için eşzamanlı çağrılara dayanıklıdır: insert sırasında
	// uniqueness ihlali "başkası az önce oluşturdu" demektir ve yeniden
	// okunarak çözülür (upsert-with-retry-on-conflict).
	Resolve(ctx context.Context, claims *models.IdentityClaims) (*models.Profile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService, constructor.
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

// Resolve, lookup-or-create akışı:
//
// 1. Dış kimlik referansı (token subject) boşsa → ErrUnauthorized.
//    Authentication'ı bu servis YAPMAZ — üst katman token'ı zaten doğruladı,
//    burası yalnızca kimliğin sunulmuş olmasını şart koşar.
// 2. user_id ile profili ara; varsa mutasyonsuz döndür.
// 3. Yoksa claim'lerdeki display bilgileriyle oluştur.
// 4. Insert UNIQUE ihlaliyle düşerse yarışan istek kazanmıştır → yeniden oku.
//
// Sonuç: her dış kimlik için en fazla BİR profil satırı oluşur.
func (s *profileService) Resolve(ctx context.Context, claims *models.IdentityClaims) (*models.Profile, error) {
	if claims == nil || strings.TrimSpace(claims.Subject) == "" {
		return nil, fmt.Errorf("%w: no identity presented", pkg.ErrUnauthorized)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, claims.Subject)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, pkg.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	// İlk görüş — claim'lerden profil oluştur.
	name := strings.TrimSpace(claims.Name)
	if name == "" {
		// Identity provider isim göndermemiş — dış kimlik referansı
		// görünür isim olarak kullanılır, kullanıcı sonradan değiştirir.
		name = claims.Subject
	}

	newProfile := &models.Profile{
		UserID: claims.Subject,
		Name:   name,
	}
	if claims.AvatarURL != "" {
		newProfile.AvatarURL = &claims.AvatarURL
	}
	if claims.Email != "" {
		newProfile.Email = &claims.Email
	}

	err = s.profileRepo.Create(ctx, newProfile)
	if err == nil {
		log.Printf("[profile] created profile %s for identity %s", newProfile.ID, claims.Subject)
		return newProfile, nil
	}

	// UNIQUE ihlali = yarışan istek profili bizden önce yazdı.
	// Hata değil — satırı yeniden okuyup onu döndürürüz.
	if errors.Is(err, pkg.ErrAlreadyExists) {
		existing, getErr := s.profileRepo.GetByUserID(ctx, claims.Subject)
		if getErr != nil {
			return nil, fmt.Errorf("failed to re-fetch profile after conflict: %w", getErr)
		}
		return existing, nil
	}

	return nil, fmt.Errorf("failed to create profile: %w", err)
}
