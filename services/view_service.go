package services

import (
	"context"

	"github.com/akinalp/huddle/models"
	"github.com/akinalp/huddle/repository"
)

// ViewService, sidebar için read-side projeksiyon üretir.
// Hiçbir mutasyon yapmaz — saf okuma katmanıdır.
type ViewService interface {
	// LoadCommunity, topluluğun tam görünümünü üretir: kanallar ortam
	// tipine göre ayrılmış, görüntüleyici hariç üyeler rol sırasında,
	// görüntüleyicinin rolü ve yetenekleri türetilmiş.
	//
	// Üye olmayan görüntüleyici için HATA DÖNMEZ: ViewerRole nil,
	// Capabilities boş gelir — "üye değilsin" kararını UI verir.
	LoadCommunity(ctx context.Context, communityID, viewerProfileID string) (*models.CommunityView, error)
}

type viewService struct {
	communityRepo  repository.CommunityRepository
	channelRepo    repository.ChannelRepository
	membershipRepo repository.MembershipRepository
}

// NewViewService, constructor.
func NewViewService(
	communityRepo repository.CommunityRepository,
	channelRepo repository.ChannelRepository,
	membershipRepo repository.MembershipRepository,
) ViewService {
	return &viewService{
		communityRepo:  communityRepo,
		channelRepo:    channelRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *viewService) LoadCommunity(ctx context.Context, communityID, viewerProfileID string) (*models.CommunityView, error) {
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return nil, err
	}

	channels, err := s.channelRepo.ListByCommunity(ctx, communityID)
	if err != nil {
		return nil, err
	}

	members, err := s.membershipRepo.ListByCommunity(ctx, communityID)
	if err != nil {
		return nil, err
	}

	view := &models.CommunityView{
		Community: *community,
		// nil slice yerine boş slice — JSON'da null değil [] görünsün.
		TextChannels:  []models.Channel{},
		AudioChannels: []models.Channel{},
		VideoChannels: []models.Channel{},
		OtherMembers:  []models.MemberWithProfile{},
		Capabilities:  []models.Capability{},
	}

	// Kanallar zaten created_at sırasında gelir; partition sırayı korur.
	for _, channel := range channels {
		switch channel.Type {
		case models.ChannelTypeAudio:
			view.AudioChannels = append(view.AudioChannels, channel)
		case models.ChannelTypeVideo:
			view.VideoChannels = append(view.VideoChannels, channel)
		default:
			// Bilinmeyen tip TEXT ile aynı muameleyi görür — veri
			// CHECK constraint sayesinde buraya zaten düşmez.
			view.TextChannels = append(view.TextChannels, channel)
		}
	}

	// Üyeler rol sırasında gelir (ADMIN önce); görüntüleyici listeden
	// çıkarılır, rolü ayrıca yakalanır.
	for _, member := range members {
		if member.ProfileID == viewerProfileID {
			role := member.Role
			view.ViewerRole = &role
			continue
		}
		view.OtherMembers = append(view.OtherMembers, member)
	}

	view.Capabilities = models.CapabilitiesFor(view.ViewerRole)

	return view, nil
}
