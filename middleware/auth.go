// Package middleware, HTTP middleware'lerini barındırır.
//
// Auth middleware iki iş yapar:
// 1. Authorization header'daki Bearer token'ı doğrular (imza + issuer).
// 2. Token'daki dış kimliği ProfileService.Resolve ile Profile'a bağlar
//    ve profili request context'ine koyar.
//
// Handler'lar profili ProfileFromContext ile okur — token'a hiç dokunmaz.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/akinalp/huddle/models"
	"github.com/akinalp/huddle/pkg"
	"github.com/akinalp/huddle/services"
)

// contextKey, context çakışmalarını önlemek için özel tip.
// string kullansaydık başka bir paket aynı key'i ezebilirdi.
type contextKey string

const profileContextKey contextKey = "profile"

// ProfileFromContext, auth middleware'in context'e koyduğu profili döner.
func ProfileFromContext(ctx context.Context) (*models.Profile, bool) {
	profile, ok := ctx.Value(profileContextKey).(*models.Profile)
	return profile, ok
}

// AuthMiddleware, token doğrulama + profil çözümleme.
type AuthMiddleware struct {
	tokenSecret    string
	issuer         string
	profileService services.ProfileService
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(tokenSecret, issuer string, profileService services.ProfileService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSecret:    tokenSecret,
		issuer:         issuer,
		profileService: profileService,
	}
}

// RequireAuth, handler'ı auth zorunluluğuyla sarar.
// Token yoksa, geçersizse veya profil çözümlenemezse 401 döner;
// handler hiç çalışmaz.
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.parseToken(r)
		if err != nil {
			pkg.Error(w, fmt.Errorf("%w: %v", pkg.ErrUnauthorized, err))
			return
		}

		profile, err := m.profileService.Resolve(r.Context(), claims)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), profileContextKey, profile)
		next(w, r.WithContext(ctx))
	}
}

// parseToken, Authorization header'dan token'ı çıkarır ve doğrular.
func (m *AuthMiddleware) parseToken(r *http.Request) (*models.IdentityClaims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("missing authorization header")
	}

	tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok {
		return nil, fmt.Errorf("authorization header must be a bearer token")
	}

	claims := &models.IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		// alg confusion saldırısına karşı imza yöntemi sabitlenir:
		// sadece HMAC kabul edilir, RS256 vb. reddedilir.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.tokenSecret), nil
	}, jwt.WithIssuer(m.issuer))

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
