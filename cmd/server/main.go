package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"business-admin-backend/internal/config"
	"business-admin-backend/internal/maintenance"
	"business-admin-backend/internal/models"
	"business-admin-backend/internal/repository"
	"business-admin-backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	cfg := config.Load()

	db, err := config.InitDB(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Task{},
		&models.Invoice{},
		&models.LineItem{},
		&models.MessageLog{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if err := seedAdmin(cfg, db); err != nil {
		log.Fatalf("admin seed failed: %v", err)
	}

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(sessions.Sessions("bizadmin_session", cookie.NewStore([]byte(cfg.SessionSecret))))

	routes.RegisterRoutes(r, db, cfg)

	// The store path only applies to the sqlite backend.
	storePath := cfg.DatabaseDSN
	if config.IsPostgresDSN(storePath) {
		storePath = ""
	}
	scheduler := maintenance.New(db, storePath, cfg.BackupDir)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("failed to start maintenance scheduler: %v", err)
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// seedAdmin creates a first admin account when the user table is empty, so
// the admin-only /register endpoint is reachable on a fresh install.
func seedAdmin(cfg config.Config, db *gorm.DB) error {
	users := repository.NewUserRepository(db)
	count, err := users.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cfg.AdminPassword == "" {
		log.Println("user table empty and ADMIN_PASSWORD unset; skipping admin seed")
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	log.Printf("seeding initial admin user %q", cfg.AdminUsername)
	return users.Create(&models.User{
		Username:     cfg.AdminUsername,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	})
}
