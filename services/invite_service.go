package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/akinalp/huddle/models"
	"github.com/akinalp/huddle/pkg"
	"github.com/akinalp/huddle/pkg/cache"
	"github.com/akinalp/huddle/repository"
)

// InviteService, davet kodlarının yaşam döngüsünü yönetir.
//
// Her topluluğun her an TEK geçerli davet kodu vardır. Rotate eskisini
// geri dönüşsüz öldürür — eski linkler "invalid invite code" olur.
type InviteService interface {
	// Rotate, topluluğun davet kodunu yenisiyle değiştirir.
	// Owner-scoped: topluluk yoksa VEYA istek sahibi owner değilse
	// pkg.ErrNotFound döner — iki durum bilinçli olarak ayırt edilmez.
	Rotate(ctx context.Context, communityID, profileID string) (*models.Community, error)

	// Join, profili davet kodunun gösterdiği topluluğa GUEST olarak ekler.
	// Idempotent: zaten üye olan tekrar join ederse üyelik değişmez,
	// topluluk başarıyla döner.
	Join(ctx context.Context, code, profileID string) (*models.Community, error)

	// Preview, davet kodunun auth gerektirmeyen ön izlemesini döner.
	Preview(ctx context.Context, code string) (*models.InvitePreview, error)
}

type inviteService struct {
	communityRepo  repository.CommunityRepository
	membershipRepo repository.MembershipRepository
	previewCache   *cache.TTLCache[string, *models.InvitePreview]
}

// NewInviteService, constructor. previewCache main'de oluşturulur ve
// shutdown'da kapatılır.
func NewInviteService(
	communityRepo repository.CommunityRepository,
	membershipRepo repository.MembershipRepository,
	previewCache *cache.TTLCache[string, *models.InvitePreview],
) InviteService {
	return &inviteService{
		communityRepo:  communityRepo,
		membershipRepo: membershipRepo,
		previewCache:   previewCache,
	}
}

func (s *inviteService) Rotate(ctx context.Context, communityID, profileID string) (*models.Community, error) {
	if strings.TrimSpace(communityID) == "" {
		return nil, fmt.Errorf("%w: community id is required", pkg.ErrBadRequest)
	}

	// Eski kodun ön izlemesini TTL beklemeden düşürebilmek için rotate
	// öncesi kod okunur. Okumada yarış olabilir ama cache zaten en fazla
	// previewCacheTTL kadar eski veri gösterir.
	var oldCode string
	if community, err := s.communityRepo.GetByID(ctx, communityID); err == nil {
		oldCode = community.InviteCode
	}

	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		newCode := uuid.NewString()

		err := s.communityRepo.RotateInviteCode(ctx, communityID, profileID, newCode)
		if err == nil {
			if oldCode != "" {
				s.previewCache.Delete(oldCode)
			}
			log.Printf("[invite] rotated invite code for community %s", communityID)
			return s.communityRepo.GetByID(ctx, communityID)
		}
		if errors.Is(err, pkg.ErrAlreadyExists) {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("%w: could not allocate a unique invite code", pkg.ErrInternal)
}

// Join, dört adımlı akış:
//
// 1. Kod boşsa → ErrBadRequest.
// 2. Short-circuit: kod eşleşiyor VE profil zaten üyeyse topluluğu
//    mutasyonsuz döndür (idempotent tekrar-join).
// 3. Kodu çöz; eşleşme yoksa → ErrNotFound ("invalid invite code" —
//    kod hiç var olmamış da olabilir, rotate edilmiş de; ayırt edilmez).
// 4. GUEST üyelik ekle. UNIQUE ihlali burada HATA DEĞİLDİR: adım 2 ile
//    4 arasında yarışan bir istek üyeliği yazmış olabilir — sonuç yine
//    "üyesin", başarı döner.
//
// Akış bilinçli olarak transaction DIŞINDADIR: tek yazma adımı vardır
// ve tutarlılığı UNIQUE(community_id, profile_id) garanti eder.
func (s *inviteService) Join(ctx context.Context, code, profileID string) (*models.Community, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: invite code is required", pkg.ErrBadRequest)
	}

	community, err := s.communityRepo.GetByInviteCodeForMember(ctx, code, profileID)
	if err == nil {
		return community, nil
	}
	if !errors.Is(err, pkg.ErrNotFound) {
		return nil, err
	}

	community, err = s.communityRepo.GetByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid invite code", pkg.ErrNotFound)
		}
		return nil, err
	}

	membership := &models.Membership{
		CommunityID: community.ID,
		ProfileID:   profileID,
		Role:        models.RoleGuest,
	}
	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		if !errors.Is(err, pkg.ErrAlreadyExists) {
			return nil, err
		}
		// Yarışı kaybettik ama hedefe ulaşıldı: profil üye.
	} else {
		log.Printf("[invite] profile %s joined community %s", profileID, community.ID)
	}

	return community, nil
}

func (s *inviteService) Preview(ctx context.Context, code string) (*models.InvitePreview, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: invite code is required", pkg.ErrBadRequest)
	}

	if preview, ok := s.previewCache.Get(code); ok {
		return preview, nil
	}

	community, err := s.communityRepo.GetByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid invite code", pkg.ErrNotFound)
		}
		return nil, err
	}

	count, err := s.communityRepo.CountMembers(ctx, community.ID)
	if err != nil {
		return nil, err
	}

	preview := &models.InvitePreview{
		CommunityName: community.Name,
		ImageURL:      community.ImageURL,
		MemberCount:   count,
	}
	s.previewCache.Set(code, preview)

	return preview, nil
}
