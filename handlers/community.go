// Package handlers, HTTP endpoint'lerini barındırır.
//
// Handler'lar incedir: request'i parse et, service'i çağır, sonucu yaz.
// İş kuralı handler'da YAŞAMAZ — services katmanına bakın.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/akinalp/huddle/middleware"
	"github.com/akinalp/huddle/models"
	"github.com/akinalp/huddle/pkg"
	"github.com/akinalp/huddle/services"
)

// CommunityHandler, topluluk endpoint'leri.
type CommunityHandler struct {
	communityService services.CommunityService
	viewService      services.ViewService
}

// NewCommunityHandler, constructor.
func NewCommunityHandler(communityService services.CommunityService, viewService services.ViewService) *CommunityHandler {
	return &CommunityHandler{
		communityService: communityService,
		viewService:      viewService,
	}
}

// Create, POST /api/communities
func (h *CommunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	var req models.CreateCommunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.Error(w, fmt.Errorf("%w: invalid request body", pkg.ErrBadRequest))
		return
	}

	community, err := h.communityService.Create(r.Context(), profile.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, community)
}

// List, GET /api/communities
func (h *CommunityHandler) List(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	communities, err := h.communityService.List(r.Context(), profile.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, communities)
}

// Get, GET /api/communities/{communityId}
// Topluluğun tam görünümünü döner (kanallar + üyeler + viewer rolü).
func (h *CommunityHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	communityID := r.PathValue("communityId")

	view, err := h.viewService.LoadCommunity(r.Context(), communityID, profile.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, view)
}

// Update, PATCH /api/communities/{communityId}
func (h *CommunityHandler) Update(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	communityID := r.PathValue("communityId")

	var req models.UpdateCommunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.Error(w, fmt.Errorf("%w: invalid request body", pkg.ErrBadRequest))
		return
	}

	community, err := h.communityService.Update(r.Context(), communityID, profile.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, community)
}

// Delete, DELETE /api/communities/{communityId}
func (h *CommunityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	communityID := r.PathValue("communityId")

	if err := h.communityService.Delete(r.Context(), communityID, profile.ID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "community deleted"})
}

// Leave, DELETE /api/communities/{communityId}/membership
func (h *CommunityHandler) Leave(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	communityID := r.PathValue("communityId")

	if err := h.communityService.Leave(r.Context(), communityID, profile.ID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "left community"})
}
