package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/huddle/models"
	"github.com/akinalp/huddle/pkg"
	"github.com/akinalp/huddle/repository"
)

func TestInviteJoin_AddsGuestMembership(t *testing.T) {
	db := newTestDB(t)
	communitySvc := newTestCommunityService(db)
	inviteSvc := newTestInviteService(t, db)
	ctx := context.Background()

	owner := createTestProfile(t, db, "Kurucu")
	guest := createTestProfile(t, db, "Misafir")

	community, err := communitySvc.Create(ctx, owner.ID, &models.CreateCommunityRequest{
		Name: "Gophers", ImageURL: "https://x/img.png",
	})
	require.NoError(t, err)

	joined, err := inviteSvc.Join(ctx, community.InviteCode, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, community.ID, joined.ID)

	members, err := repository.NewSQLiteMembershipRepo(db.Conn).ListByCommunity(ctx, community.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)

	// ADMIN önce gelir; misafir GUEST rolüyle ikinci sıradadır.
	assert.Equal(t, owner.ID, members[0].ProfileID)
	assert.Equal(t, models.RoleAdmin, members[0].Role)
	assert.Equal(t, guest.ID, members[1].ProfileID)
	assert.Equal(t, models.RoleGuest, members[1].Role)
}

func TestInviteJoin_Idempotent(t *testing.T) {
	db := newTestDB(t)
	communitySvc := newTestCommunityService(db)
	inviteSvc := newTestInviteService(t, db)
	ctx := context.Background()

	owner := createTestProfile(t, db, "Kurucu")
	guest := createTestProfile(t, db, "Misafir")

	community, err := communitySvc.Create(ctx, owner.ID, &models.CreateCommunityRequest{
		Name: "Gophers", ImageURL: "https://x/img.png",
	})
	require.NoError(t, err)

	first, err := inviteSvc.Join(ctx, community.InviteCode, guest.ID)
	require.NoError(t, err)

	// Aynı davetle tekrar join: hata yok, üyelik değişmez.
	second, err := inviteSvc.Join(ctx, community.InviteCode, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	members, err := repository.NewSQLiteMembershipRepo(db.Conn).ListByCommunity(ctx, community.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

// Aynı profil aynı kodla eşzamanlı join ederse: yarışı kaybedenler
// UNIQUE(community_id, profile_id) ihlaline düşer, bu ihlal başarı
// sayılır ve DB'de tek üyelik satırı kalır.
func TestInviteJoin_ConcurrentSameProfile(t *testing.T) {
	db := newTestDB(t)
	communitySvc := newTestCommunityService(db)
	inviteSvc := newTestInviteService(t, db)
	ctx := context.Background()

	owner := createTestProfile(t, db, "Kurucu")
	guest := createTestProfile(t, db, "Misafir")

	community, err := communitySvc.Create(ctx, owner.ID, &models.CreateCommunityRequest{
		Name: "Gophers", ImageURL: "https://x/img.png",
	})
	require.NoError(t, err)

	const workers = 8

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = inviteSvc.Join(ctx, community.InviteCode, guest.ID)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		assert.NoError(t, errs[i], "worker %d", i)
	}

	var count int
	require.NoError(t, db.Conn.QueryRow(
		"SELECT COUNT(*) FROM memberships WHERE community_id = ? AND profile_id = ?",
		community.ID, guest.ID,
	).Scan(&count))
	assert.Equal(t, 1, count)
}

// Step-by-step çakışma senaryosu: short-circuit kontrolünden SONRA,
// insert'ten ÖNCE başka bir istek üyeliği yazmışsa insert UNIQUE
// ihlaline düşer ve Join bunu başarı olarak döner. Repo katmanında
// ihlalin sentinel'e doğru çevrildiği de burada doğrulanır.
func TestInviteJoin_ConflictAfterCheckIsSuccess(t *testing.T) {
	db := newTestDB(t)
	communitySvc := newTestCommunityService(db)
	inviteSvc := newTestInviteService(t, db)
	ctx := context.Background()

	owner := createTestProfile(t, db, "Kurucu")
	guest := createTestProfile(t, db, "Misafir")

	community, err := communitySvc.Create(ctx, owner.ID, &models.CreateCommunityRequest{
		Name: "Gophers", ImageURL: "https://x/img.png",
	})
	require.NoError(t, err)

	membershipRepo := repository.NewSQLiteMembershipRepo(db.Conn)

	// Yarışan isteğin yazdığı satır.
	require.NoError(t, membershipRepo.Create(ctx, &models.Membership{
		CommunityID: community.ID,
		ProfileID:   guest.ID,
		Role:        models.RoleGuest,
	}))

	// İkinci insert denemesi ihlale düşer ve sentinel döner.
	err = membershipRepo.Create(ctx, &models.Membership{
		CommunityID: community.ID,
		ProfileID:   guest.ID,
		Role:        models.RoleGuest,
	})
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)

	// Join aynı ihlali kullanıcıya hata olarak GÖSTERMEZ.
	joined, err := inviteSvc.Join(ctx, community.InviteCode, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, community.ID, joined.ID)

	members, err := membershipRepo.ListByCommunity(ctx, community.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestInviteJoin_OwnerRejoinKeepsAdminRole(t *testing.T) {
	db := newTestDB(t)
	communitySvc := newTestCommunityService(db)
	inviteSvc := newTestInviteService(t, db)
	ctx := context.Background()

	owner := createTestProfile(t, db, "Kurucu")

	community, err := communitySvc.Create(ctx, owner.ID, &models.CreateCommunityRequest{
		Name: "Gophers", ImageURL: "https://x/img.png",
	})
	require.NoError(t, err)

	// Kurucu kendi davet linkine tıklarsa ADMIN rolü GUEST'e düşmez.
	_, err = inviteSvc.Join(ctx, community.InviteCode, owner.ID)
	require.NoError(t, err)

	members, err := repository.NewSQLiteMembershipRepo(db.Conn).ListByCommunity(ctx, community.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, models.RoleAdmin, members[0].Role)
}

func TestInviteJoin_InvalidCode(t *testing.T) {
	db := newTestDB(t)
	inviteSvc := newTestInviteService(t, db)
	ctx := context.Background()

	guest := createTestProfile(t, db, "Misafir")

	_, err := inviteSvc.Join(ctx, "no-such-code", guest.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	_, err = inviteSvc.Join(ctx, "  ", guest.ID)
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestInviteRotate_KillsOldCode(t *testing.T) {
	db := newTestDB(t)
	communitySvc := newTestCommunityService(db)
	inviteSvc := newTestInviteService(t, db)
	ctx := context.Background()

	owner := createTestProfile(t, db, "Kurucu")
	guest := createTestProfile(t, db, "Misafir")

	community, err := communitySvc.Create(ctx, owner.ID, &models.CreateCommunityRequest{
		Name: "Gophers", ImageURL: "https://x/img.png",
	})
	require.NoError(t, err)
	oldCode := community.InviteCode

	rotated, err := inviteSvc.Rotate(ctx, community.ID, owner.ID)
	require.NoError(t, err)
	assert.NotEqual(t, oldCode, rotated.InviteCode)

	// Eski kod geri dönüşsüz ölür.
	_, err = inviteSvc.Join(ctx, oldCode, guest.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	// Yeni kod çalışır.
	_, err = inviteSvc.Join(ctx, rotated.InviteCode, guest.ID)
	require.NoError(t, err)
}

func TestInviteRotate_OwnerOnly(t *testing.T) {
	db := newTestDB(t)
	communitySvc := newTestCommunityService(db)
	inviteSvc := newTestInviteService(t, db)
	ctx := context.Background()

	owner := createTestProfile(t, db, "Kurucu")
	guest := createTestProfile(t, db, "Misafir")

	community, err := communitySvc.Create(ctx, owner.ID, &models.CreateCommunityRequest{
		Name: "Gophers", ImageURL: "https://x/img.png",
	})
	require.NoError(t, err)

	_, err = inviteSvc.Join(ctx, community.InviteCode, guest.ID)
	require.NoError(t, err)

	// Üye ama owner değil → NotFound (Forbidden değil — varlık sızdırılmaz).
	_, err = inviteSvc.Rotate(ctx, community.ID, guest.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	// Olmayan topluluk da aynı cevabı alır.
	_, err = inviteSvc.Rotate(ctx, "no-such-community", owner.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	// Rotate başarısız olduğuna göre eski kod hâlâ geçerli olmalı.
	current, err := communitySvc.Get(ctx, community.ID)
	require.NoError(t, err)
	assert.Equal(t, community.InviteCode, current.InviteCode)
}

func TestInvitePreview(t *testing.T) {
	db := newTestDB(t)
	communitySvc := newTestCommunityService(db)
	inviteSvc := newTestInviteService(t, db)
	ctx := context.Background()

	owner := createTestProfile(t, db, "Kurucu")
	guest := createTestProfile(t, db, "Misafir")

	community, err := communitySvc.Create(ctx, owner.ID, &models.CreateCommunityRequest{
		Name: "Gophers", ImageURL: "https://x/img.png",
	})
	require.NoError(t, err)

	preview, err := inviteSvc.Preview(ctx, community.InviteCode)
	require.NoError(t, err)
	assert.Equal(t, "Gophers", preview.CommunityName)
	assert.Equal(t, "https://x/img.png", preview.ImageURL)
	assert.Equal(t, 1, preview.MemberCount)

	// Cache'lenmiş sonuç: yeni üye sayısı TTL dolana kadar görünmeyebilir.
	_, err = inviteSvc.Join(ctx, community.InviteCode, guest.ID)
	require.NoError(t, err)

	cached, err := inviteSvc.Preview(ctx, community.InviteCode)
	require.NoError(t, err)
	assert.Equal(t, 1, cached.MemberCount)

	_, err = inviteSvc.Preview(ctx, "no-such-code")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

// Tam akış: davet linki hayat döngüsü.
// Kurucu topluluğu kurar, misafir davetle katılır, kod rotate edilir,
// eski linke tıklayan ikinci misafir reddedilir, yenisiyle katılır.
func TestInviteLifecycle(t *testing.T) {
	db := newTestDB(t)
	communitySvc := newTestCommunityService(db)
	inviteSvc := newTestInviteService(t, db)
	ctx := context.Background()

	owner := createTestProfile(t, db, "Kurucu")
	firstGuest := createTestProfile(t, db, "Misafir 1")
	secondGuest := createTestProfile(t, db, "Misafir 2")

	community, err := communitySvc.Create(ctx, owner.ID, &models.CreateCommunityRequest{
		Name: "Gophers", ImageURL: "https://x/img.png",
	})
	require.NoError(t, err)

	_, err = inviteSvc.Join(ctx, community.InviteCode, firstGuest.ID)
	require.NoError(t, err)

	rotated, err := inviteSvc.Rotate(ctx, community.ID, owner.ID)
	require.NoError(t, err)

	// Eski linki paylaşılmış ikinci misafir artık giremez.
	_, err = inviteSvc.Join(ctx, community.InviteCode, secondGuest.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	// Rotate mevcut üyeliklere dokunmaz.
	_, err = inviteSvc.Join(ctx, rotated.InviteCode, secondGuest.ID)
	require.NoError(t, err)

	members, err := repository.NewSQLiteMembershipRepo(db.Conn).ListByCommunity(ctx, community.ID)
	require.NoError(t, err)
	assert.Len(t, members, 3)
}
