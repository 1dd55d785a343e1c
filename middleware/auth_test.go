package middleware

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/huddle/database"
	"github.com/akinalp/huddle/models"
	"github.com/akinalp/huddle/repository"
	"github.com/akinalp/huddle/services"
)

const (
	testSecret = "test-secret"
	testIssuer = "huddle-identity"
)

func newTestAuth(t *testing.T) *AuthMiddleware {
	t.Helper()

	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrations)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	profileService := services.NewProfileService(repository.NewSQLiteProfileRepo(db.Conn))
	return NewAuthMiddleware(testSecret, testIssuer, profileService)
}

func signToken(t *testing.T, secret, issuer, subject string) string {
	t.Helper()

	claims := &models.IdentityClaims{
		Name: "Aylin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestRequireAuth_ValidToken(t *testing.T) {
	auth := newTestAuth(t)

	var got *models.Profile
	handler := auth.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		profile, ok := ProfileFromContext(r.Context())
		require.True(t, ok)
		got = profile
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/communities", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, testIssuer, "user-123"))
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "user-123", got.UserID)
	assert.Equal(t, "Aylin", got.Name)
}

func TestRequireAuth_Rejections(t *testing.T) {
	auth := newTestAuth(t)

	handler := auth.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic dXNlcjpwYXNz"},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", testIssuer, "user-123")},
		{"wrong issuer", "Bearer " + signToken(t, testSecret, "someone-else", "user-123")},
		{"garbage token", "Bearer not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/communities", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	auth := newTestAuth(t)

	handler := auth.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	claims := &models.IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/communities", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
