// huddle — topluluk üyeliği ve davet servisi.
//
// Kimlik dışarıdan gelir (imzalı identity token), profiller lazy oluşur,
// topluluklar tek davet koduyla büyür. Katman sırası:
//
//	handler → service → repository → SQLite
//
// main.go yalnızca wiring yapar: config yükle, DB aç, katmanları kur,
// route'ları bağla, graceful shutdown ile dinle.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/akinalp/huddle/config"
	"github.com/akinalp/huddle/database"
	"github.com/akinalp/huddle/handlers"
	"github.com/akinalp/huddle/middleware"
	"github.com/akinalp/huddle/models"
	"github.com/akinalp/huddle/pkg"
	"github.com/akinalp/huddle/pkg/cache"
	"github.com/akinalp/huddle/pkg/ratelimit"
	"github.com/akinalp/huddle/repository"
	"github.com/akinalp/huddle/services"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}

	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] failed to load embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrations)
	if err != nil {
		log.Fatalf("[main] failed to open database: %v", err)
	}
	defer db.Close()

	// Repository'ler — normal istek yolunda DB-bound; topluluk oluşturma
	// kendi transaction'ı içinde tx-bound kopyalarını kurar.
	profileRepo := repository.NewSQLiteProfileRepo(db.Conn)
	communityRepo := repository.NewSQLiteCommunityRepo(db.Conn)
	channelRepo := repository.NewSQLiteChannelRepo(db.Conn)
	membershipRepo := repository.NewSQLiteMembershipRepo(db.Conn)

	// Davet ön izleme cache'i — 30s TTL, dakikada bir temizlik.
	previewCache := cache.New[string, *models.InvitePreview](30*time.Second, time.Minute)
	defer previewCache.Close()

	// Servisler.
	profileService := services.NewProfileService(profileRepo)
	communityService := services.NewCommunityService(db.Conn, communityRepo, membershipRepo)
	inviteService := services.NewInviteService(communityRepo, membershipRepo, previewCache)
	viewService := services.NewViewService(communityRepo, channelRepo, membershipRepo)

	// Join endpoint'i IP başına dakikada 10 denemeyle sınırlı.
	joinLimiter := ratelimit.NewJoinRateLimiter(10, time.Minute)
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			joinLimiter.Cleanup()
		}
	}()

	// Middleware ve handler'lar.
	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth.TokenSecret, cfg.Auth.Issuer, profileService)
	communityHandler := handlers.NewCommunityHandler(communityService, viewService)
	inviteHandler := handlers.NewInviteHandler(inviteService, joinLimiter)

	// Route'lar — Go 1.22 method + path pattern routing.
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		pkg.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /api/communities", authMiddleware.RequireAuth(communityHandler.Create))
	mux.HandleFunc("GET /api/communities", authMiddleware.RequireAuth(communityHandler.List))
	mux.HandleFunc("GET /api/communities/{communityId}", authMiddleware.RequireAuth(communityHandler.Get))
	mux.HandleFunc("PATCH /api/communities/{communityId}", authMiddleware.RequireAuth(communityHandler.Update))
	mux.HandleFunc("DELETE /api/communities/{communityId}", authMiddleware.RequireAuth(communityHandler.Delete))
	mux.HandleFunc("DELETE /api/communities/{communityId}/membership", authMiddleware.RequireAuth(communityHandler.Leave))
	mux.HandleFunc("PATCH /api/communities/{communityId}/invite-code", authMiddleware.RequireAuth(inviteHandler.Rotate))

	// Ön izleme auth gerektirmez — davet linkine tıklayan henüz üye değil.
	mux.HandleFunc("GET /api/invites/{code}", inviteHandler.Preview)
	mux.HandleFunc("POST /api/invites/{code}/join", authMiddleware.RequireAuth(inviteHandler.Join))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(mux)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      corsHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	// Graceful shutdown: SIGINT/SIGTERM gelince yeni bağlantı kabulü durur,
	// uçuştaki istekler 10 saniyeye kadar tamamlanır.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[main] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped")
}
