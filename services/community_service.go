package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/akinalp/huddle/database"
	"github.com/akinalp/huddle/models"
	"github.com/akinalp/huddle/pkg"
	"github.com/akinalp/huddle/repository"
)

// inviteCodeAttempts, uuid çakışması pratikte imkansızdır ama UNIQUE
// constraint'e güvenen retry loop yine de sınırlı olmalıdır.
const inviteCodeAttempts = 3

// CommunityService, topluluk yaşam döngüsünü yönetir.
type CommunityService interface {
	// Create, topluluğu TEK transaction içinde üç satır olarak oluşturur:
	// topluluk + "general" TEXT kanalı + kurucunun ADMIN üyeliği.
	// Hiçbir kanalı veya üyesi olmayan bir topluluk hiçbir anda gözlemlenemez.
	Create(ctx context.Context, ownerProfileID string, req *models.CreateCommunityRequest) (*models.Community, error)

	// Get, topluluğu ID ile döner (üyelik şartı aramaz — view katmanı
	// üye olmayana zaten kısıtlı projeksiyon verir).
	Get(ctx context.Context, communityID string) (*models.Community, error)

	// List, profilin üyesi olduğu toplulukları katılma sırasına göre döner.
	List(ctx context.Context, profileID string) ([]models.Community, error)

	// Update, isim/görseli günceller. Sadece owner yapabilir; owner değilse
	// veya topluluk yoksa pkg.ErrNotFound döner (ayırt edilmez).
	Update(ctx context.Context, communityID, profileID string, req *models.UpdateCommunityRequest) (*models.Community, error)

	// Delete, topluluğu siler. Owner-scoped; kanallar ve üyelikler
	// cascade ile gider.
	Delete(ctx context.Context, communityID, profileID string) error

	// Leave, profili topluluktan çıkarır. Owner ayrılamaz — topluluğu
	// silmeli veya devretmelidir (devir bu sürümde yok).
	Leave(ctx context.Context, communityID, profileID string) error
}

type communityService struct {
	db             *sql.DB
	communityRepo  repository.CommunityRepository
	membershipRepo repository.MembershipRepository
}

// NewCommunityService, constructor.
// db, Create'in transaction açabilmesi için ham bağlantıdır; okuma yolları
// DB-bound repository'leri kullanır.
func NewCommunityService(
	db *sql.DB,
	communityRepo repository.CommunityRepository,
	membershipRepo repository.MembershipRepository,
) CommunityService {
	return &communityService{
		db:             db,
		communityRepo:  communityRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *communityService) Create(ctx context.Context, ownerProfileID string, req *models.CreateCommunityRequest) (*models.Community, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrBadRequest, err)
	}

	var created *models.Community

	// Davet kodu çakışması transaction'ı düşürür; yeni kodla baştan denenir.
	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		community := &models.Community{
			OwnerProfileID: ownerProfileID,
			Name:           req.Name,
			ImageURL:       req.ImageURL,
			InviteCode:     uuid.NewString(),
		}

		err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
			communityRepo := repository.NewSQLiteCommunityRepo(tx)
			channelRepo := repository.NewSQLiteChannelRepo(tx)
			membershipRepo := repository.NewSQLiteMembershipRepo(tx)

			if err := communityRepo.Create(ctx, community); err != nil {
				return err
			}

			// Her topluluk bir "general" kanalıyla doğar.
			channel := &models.Channel{
				CommunityID:      community.ID,
				Name:             models.DefaultChannelName,
				Type:             models.ChannelTypeText,
				CreatorProfileID: ownerProfileID,
			}
			if err := channelRepo.Create(ctx, channel); err != nil {
				return err
			}

			// Kurucu ADMIN olarak üye olur.
			membership := &models.Membership{
				CommunityID: community.ID,
				ProfileID:   ownerProfileID,
				Role:        models.RoleAdmin,
			}
			return membershipRepo.Create(ctx, membership)
		})

		if err == nil {
			created = community
			break
		}
		if errors.Is(err, pkg.ErrAlreadyExists) {
			continue
		}
		return nil, fmt.Errorf("failed to create community: %w", err)
	}

	if created == nil {
		return nil, fmt.Errorf("%w: could not allocate a unique invite code", pkg.ErrInternal)
	}

	log.Printf("[community] created community %s (owner %s)", created.ID, ownerProfileID)
	return created, nil
}

func (s *communityService) Get(ctx context.Context, communityID string) (*models.Community, error) {
	return s.communityRepo.GetByID(ctx, communityID)
}

func (s *communityService) List(ctx context.Context, profileID string) ([]models.Community, error) {
	communities, err := s.communityRepo.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if communities == nil {
		communities = []models.Community{} // nil slice yerine boş slice (JSON: null değil [])
	}
	return communities, nil
}

func (s *communityService) Update(ctx context.Context, communityID, profileID string, req *models.UpdateCommunityRequest) (*models.Community, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrBadRequest, err)
	}

	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return nil, err
	}
	// Owner olmayan da "yok" cevabı alır — topluluğun varlığı sızdırılmaz.
	if community.OwnerProfileID != profileID {
		return nil, fmt.Errorf("%w: community not found", pkg.ErrNotFound)
	}

	if req.Name != nil {
		community.Name = *req.Name
	}
	if req.ImageURL != nil {
		community.ImageURL = *req.ImageURL
	}

	if err := s.communityRepo.Update(ctx, community); err != nil {
		return nil, err
	}

	return community, nil
}

func (s *communityService) Delete(ctx context.Context, communityID, profileID string) error {
	if err := s.communityRepo.Delete(ctx, communityID, profileID); err != nil {
		return err
	}

	log.Printf("[community] deleted community %s", communityID)
	return nil
}

func (s *communityService) Leave(ctx context.Context, communityID, profileID string) error {
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return err
	}

	if community.OwnerProfileID == profileID {
		return fmt.Errorf("%w: the owner cannot leave their own community", pkg.ErrForbidden)
	}

	if err := s.membershipRepo.Delete(ctx, communityID, profileID); err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return fmt.Errorf("%w: not a member of this community", pkg.ErrNotFound)
		}
		return err
	}

	log.Printf("[community] profile %s left community %s", profileID, communityID)
	return nil
}
