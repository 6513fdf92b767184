package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/clinic-review-platform/internal/config"
	"github.com/iliyamo/clinic-review-platform/internal/database"
	"github.com/iliyamo/clinic-review-platform/internal/handler"
	"github.com/iliyamo/clinic-review-platform/internal/middleware"
	"github.com/iliyamo/clinic-review-platform/internal/queue"
	"github.com/iliyamo/clinic-review-platform/internal/remote"
	"github.com/iliyamo/clinic-review-platform/internal/repository"
	"github.com/iliyamo/clinic-review-platform/internal/router"
	"github.com/iliyamo/clinic-review-platform/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment
	cfg := config.Load()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := database.Bootstrap(context.Background(), db); err != nil {
		log.Fatalf("bootstrap schema: %v", err)
	}

	// Remote mirroring is optional; a nil gateway runs local-only.
	var gw remote.Gateway
	if cfg.RemoteURL != "" {
		gw = remote.NewClient(cfg.RemoteURL, cfg.RemoteKey)
	}

	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	clinics := repository.NewClinicRepo(db)
	doctors := repository.NewDoctorRepo(db)
	reviews := repository.NewReviewRepo(db)
	reports := repository.NewReportRepo(db)
	bookings := repository.NewBookingRepo(db)
	favorites := repository.NewFavoriteRepo(db)
	auditRepo := repository.NewAuditRepo(db, cfg.AuditCap)

	auditor := &service.Auditor{
		Repo:         auditRepo,
		Remote:       gw,
		QueueEnabled: cfg.QueueURL != "",
	}
	catalog := &service.CatalogService{
		Clinics: clinics,
		Doctors: doctors,
		Reviews: reviews,
	}
	syncer := &service.SyncService{
		Clinics:  clinics,
		Doctors:  doctors,
		Reviews:  reviews,
		Bookings: bookings,
		Remote:   gw,
	}
	auth := &service.AuthService{
		Users:        users,
		Sessions:     sessions,
		Clinics:      clinics,
		Audit:        auditor,
		Remote:       gw,
		Sync:         syncer,
		JWTSecret:    cfg.JWTSecret,
		AccessTTLMin: cfg.AccessTTLMin,
		BcryptCost:   cfg.BcryptCost,
	}
	lifecycle := &service.LifecycleService{
		Users:     users,
		Clinics:   clinics,
		Doctors:   doctors,
		Reviews:   reviews,
		Reports:   reports,
		Bookings:  bookings,
		Favorites: favorites,
		Catalog:   catalog,
		Audit:     auditor,
		Remote:    gw,
	}

	if cfg.QueueURL != "" {
		go func() {
			if err := queue.StartAuditConsumer(); err != nil {
				log.Printf("audit consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true

	rdb := config.NewRedisClient()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(auth, auditor), cfg.JWTSecret, sessions)
	router.RegisterPublic(e, handler.NewPublicHandler(catalog), cache)
	router.RegisterPatient(e, handler.NewPatientHandler(lifecycle), cfg.JWTSecret, sessions)
	router.RegisterClinic(e, handler.NewClinicHandler(lifecycle), cfg.JWTSecret, sessions)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
