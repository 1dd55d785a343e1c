// Package models — rol → yetenek (capability) policy'si.
//
// Rol kontrolü her call site'da "role == ADMIN" diye tekrarlanmaz:
// CapabilitiesFor view oluşturulurken BİR KEZ değerlendirilir ve
// presentation katmanı sonucu veri olarak tüketir.
package models

// Capability, bir rolün topluluk içinde yapmasına izin verilen eylemi temsil eder.
type Capability string

const (
	// CapManageInvites — davet kodunu görüntüleme ve rotate etme.
	CapManageInvites Capability = "MANAGE_INVITES"
	// CapManageChannels — kanal oluşturma/düzenleme.
	CapManageChannels Capability = "MANAGE_CHANNELS"
	// CapManageMembers — üye rollerini yönetme, üye çıkarma.
	CapManageMembers Capability = "MANAGE_MEMBERS"
	// CapManageCommunity — topluluk adı/görseli güncelleme, topluluğu silme.
	CapManageCommunity Capability = "MANAGE_COMMUNITY"
	// CapLeaveCommunity — topluluktan ayrılma (kurucu ayrılamaz).
	CapLeaveCommunity Capability = "LEAVE_COMMUNITY"
)

// CapabilitiesFor, verilen rolün yetenek setini döner.
//
// nil rol = üye olmayan görüntüleyici → boş set ("yetki yok", hata değil).
// Gözlemlenen ürün davranışı: ADMIN her şeyi yapar, MODERATOR davet
// yönetebilir, GUEST yalnızca ayrılabilir.
func CapabilitiesFor(role *MemberRole) []Capability {
	if role == nil {
		return []Capability{}
	}

	switch *role {
	case RoleAdmin:
		return []Capability{
			CapManageInvites,
			CapManageChannels,
			CapManageMembers,
			CapManageCommunity,
		}
	case RoleModerator:
		return []Capability{
			CapManageInvites,
			CapLeaveCommunity,
		}
	case RoleGuest:
		return []Capability{
			CapLeaveCommunity,
		}
	default:
		return []Capability{}
	}
}
