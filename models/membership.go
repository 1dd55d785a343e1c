// Package models — Membership domain modeli ve rol tanımları.
package models

import "time"

// MemberRole, bir üyenin topluluktaki rolünü temsil eder.
type MemberRole string

const (
	RoleAdmin     MemberRole = "ADMIN"     // kurucu seviyesi
	RoleModerator MemberRole = "MODERATOR" // yükseltilmiş
	RoleGuest     MemberRole = "GUEST"     // davetle katılanların varsayılanı
)

// Rank, rolün hiyerarşi sırasını döner — küçük değer daha güçlü rol.
// Üye listeleri role göre artan sırada döner (ADMIN önce), SQL sorgusu
// aynı sıralamayı CASE ifadesiyle üretir. Bilinmeyen rol en sona düşer.
func (r MemberRole) Rank() int {
	switch r {
	case RoleAdmin:
		return 0
	case RoleModerator:
		return 1
	case RoleGuest:
		return 2
	default:
		return 3
	}
}

// Membership, bir Profile ile bir Community arasındaki üyelik ilişkisidir.
// DB'deki "memberships" tablosunun Go karşılığıdır.
//
// (community_id, profile_id) çifti UNIQUE'tir — aynı profil aynı topluluğa
// en fazla bir kez üye olabilir. Bu invariant service katmanında değil,
// DB constraint'i ile korunur (bkz. InviteService.Join).
type Membership struct {
	ID          string     `json:"id"`
	CommunityID string     `json:"community_id"`
	ProfileID   string     `json:"profile_id"`
	Role        MemberRole `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// MemberWithProfile, üyelik bilgisini profil bilgisiyle birleştiren view model.
// Üye listelerinde kullanılır — frontend isim ve avatarı ayrıca çekmek
// zorunda kalmaz.
type MemberWithProfile struct {
	Membership
	Profile Profile `json:"profile"`
}
