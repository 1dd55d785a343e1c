// Package repository — ChannelRepository interface.
package repository

import (
	"context"

	"github.com/akinalp/huddle/models"
)

// ChannelRepository, kanal veritabanı işlemleri için interface.
type ChannelRepository interface {
	// Create, yeni bir kanal satırı ekler.
	// Topluluk oluşturma transaction'ında "general" kanalı buradan yazılır.
	Create(ctx context.Context, channel *models.Channel) error

	// ListByCommunity, topluluğun kanallarını oluşturulma sırasına göre
	// (created_at artan) döner.
	ListByCommunity(ctx context.Context, communityID string) ([]models.Channel, error)
}
