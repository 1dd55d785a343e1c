package handlers

import (
	"net"
	"net/http"

	"github.com/akinalp/huddle/middleware"
	"github.com/akinalp/huddle/pkg"
	"github.com/akinalp/huddle/pkg/ratelimit"
	"github.com/akinalp/huddle/services"
)

// InviteHandler, davet endpoint'leri.
type InviteHandler struct {
	inviteService services.InviteService
	joinLimiter   *ratelimit.JoinRateLimiter
}

// NewInviteHandler, constructor.
func NewInviteHandler(inviteService services.InviteService, joinLimiter *ratelimit.JoinRateLimiter) *InviteHandler {
	return &InviteHandler{
		inviteService: inviteService,
		joinLimiter:   joinLimiter,
	}
}

// Rotate, PATCH /api/communities/{communityId}/invite-code
// Eski kod anında ölür; response'ta yeni kodlu topluluk döner.
func (h *InviteHandler) Rotate(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	communityID := r.PathValue("communityId")

	community, err := h.inviteService.Rotate(r.Context(), communityID, profile.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, community)
}

// Preview, GET /api/invites/{code}
// Auth GEREKTİRMEZ — davet linkine tıklayan henüz giriş yapmamış olabilir.
func (h *InviteHandler) Preview(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	preview, err := h.inviteService.Preview(r.Context(), code)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, preview)
}

// Join, POST /api/invites/{code}/join
// Rate limit IP bazlıdır — rastgele kod taramasını engeller.
func (h *InviteHandler) Join(w http.ResponseWriter, r *http.Request) {
	if !h.joinLimiter.Allow(clientIP(r)) {
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests, "too many join attempts, try again later")
		return
	}

	profile, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	code := r.PathValue("code")

	community, err := h.inviteService.Join(r.Context(), code, profile.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, community)
}

// clientIP, RemoteAddr'dan portu ayıklar.
// Reverse proxy arkasında X-Forwarded-For gerekir ama proxy'ye
// güvenmeden o header'ı okumak spoofing'e açıktır — bilinçli olarak
// sadece RemoteAddr kullanılır.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
