// Package models — Channel domain modeli.
package models

import "time"

// ChannelType, kanalın iletişim ortamını temsil eder.
// Go'da enum yoktur — typed string constant'lar kullanılır.
type ChannelType string

const (
	ChannelTypeText  ChannelType = "TEXT"
	ChannelTypeAudio ChannelType = "AUDIO"
	ChannelTypeVideo ChannelType = "VIDEO"
)

// DefaultChannelName, her yeni toplulukla birlikte oluşturulan
// TEXT kanalının adıdır.
const DefaultChannelName = "general"

// Channel, bir topluluk içindeki kanalı temsil eder.
// DB'deki "channels" tablosunun Go karşılığıdır.
// Her kanal tam olarak bir topluluğa aittir.
type Channel struct {
	ID               string      `json:"id"`
	CommunityID      string      `json:"community_id"`
	Name             string      `json:"name"`
	Type             ChannelType `json:"type"`
	CreatorProfileID string      `json:"creator_profile_id"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}
