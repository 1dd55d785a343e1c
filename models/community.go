// Package models — Community domain modeli.
//
// Community (Discord'daki "server" benzeri), kanal ve üyelikleri sahiplenen
// kök aggregate'tir. Kanal ve üyelikler topluluk silinince kaybolur (cascade);
// Profile ise bağımsızdır — referans verilir, sahiplenilmez.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Community, bir topluluğu temsil eder.
// DB'deki "communities" tablosunun Go karşılığıdır.
//
// InviteCode her an tek canlı davet kodudur: rotate edilince eskisi
// anında geçersizleşir (replace, append değil). Tüm topluluklar arasında
// benzersizdir — kod tek başına topluluğu çözmeye yeter.
type Community struct {
	ID             string    `json:"id"`
	OwnerProfileID string    `json:"owner_profile_id"`
	Name           string    `json:"name"`
	ImageURL       string    `json:"image_url"`
	InviteCode     string    `json:"invite_code"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateCommunityRequest, yeni topluluk oluşturma isteği.
// ImageURL, blob upload servisinin döndürdüğü opak URL'dir —
// bu servis içeriğini yorumlamaz.
type CreateCommunityRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// Validate, CreateCommunityRequest kontrolü.
// Asıl validasyon client tarafında yapılır; burası yapısal olarak boş
// değerlere karşı son savunmadır.
func (r *CreateCommunityRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.ImageURL = strings.TrimSpace(r.ImageURL)

	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 1 || nameLen > 100 {
		return fmt.Errorf("community name must be between 1 and 100 characters")
	}
	if r.ImageURL == "" {
		return fmt.Errorf("community image is required")
	}
	return nil
}

// UpdateCommunityRequest, topluluk güncelleme isteği.
//
// Partial update pattern: nil field'lar değiştirilmez.
// Bu pattern Go REST API'lerinde standart: nil = omit, non-nil = set.
type UpdateCommunityRequest struct {
	Name     *string `json:"name"`
	ImageURL *string `json:"image_url"`
}

// Validate, UpdateCommunityRequest kontrolü.
func (r *UpdateCommunityRequest) Validate() error {
	if r.Name != nil {
		nameLen := utf8.RuneCountInString(strings.TrimSpace(*r.Name))
		if nameLen < 1 || nameLen > 100 {
			return fmt.Errorf("community name must be between 1 and 100 characters")
		}
	}
	if r.ImageURL != nil && strings.TrimSpace(*r.ImageURL) == "" {
		return fmt.Errorf("community image cannot be empty")
	}
	return nil
}
