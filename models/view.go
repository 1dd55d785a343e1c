// Package models — read-side view modelleri.
package models

// CommunityView, bir topluluğun sidebar görünümü için gereken her şeyi
// tek response'ta toplar: kanallar ortam tipine göre ayrılmış, üyeler
// profilleriyle birlikte, görüntüleyicinin rolü ve yetenekleri türetilmiş.
//
// Pure read projection — hiçbir mutasyon yapmaz.
type CommunityView struct {
	Community Community `json:"community"`

	// Kanallar created_at artan sırada, tipe göre partition edilmiş.
	TextChannels  []Channel `json:"text_channels"`
	AudioChannels []Channel `json:"audio_channels"`
	VideoChannels []Channel `json:"video_channels"`

	// OtherMembers, görüntüleyicinin KENDİSİ HARİÇ tüm üyeler,
	// role göre artan sırada (ADMIN önce).
	OtherMembers []MemberWithProfile `json:"other_members"`

	// ViewerRole nil ise görüntüleyici üye değildir — bu bir hata değil,
	// "yetkisiz görüntüleyici" durumudur. Capabilities o zaman boş döner.
	ViewerRole   *MemberRole  `json:"viewer_role"`
	Capabilities []Capability `json:"capabilities"`
}

// InvitePreview, davet kodunun auth gerektirmeyen ön izlemesi.
// Davet linkine tıklayan (henüz giriş yapmamış) kullanıcıya
// topluluk adı, görseli ve üye sayısı gösterilir.
type InvitePreview struct {
	CommunityName string `json:"community_name"`
	ImageURL      string `json:"image_url"`
	MemberCount   int    `json:"member_count"`
}
