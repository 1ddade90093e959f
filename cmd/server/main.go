package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	_ "spark/docs" // swagger docs

	"spark/internal/auth"
	"spark/internal/cache"
	"spark/internal/config"
	"spark/internal/db"
	"spark/internal/handler"
	"spark/internal/logger"
	"spark/internal/mail"
	"spark/internal/repository"
	"spark/internal/router"
	"spark/internal/service"
)

// @title Spark API
// @version 1.0
// @description University society management: accounts, societies, roles, events and attendance.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(0).Fatal("load config", "error", err)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log.Logger)

	gormDB, err := db.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatal("database init", "error", err)
	}

	if cfg.Database.Reset {
		log.Warn("database reset requested, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			log.Fatal("database reset", "error", err)
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("database migrate", "error", err)
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer cacheClient.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.Warn("redis unavailable, serving without cache", "addr", cfg.Redis.Addr, "error", err)
	}
	cancel()

	// Initialize repositories
	repos := repository.New(gormDB)
	tx := repository.NewTransactor(gormDB)

	// Initialize auth components
	tokens := auth.NewTokenService(cfg.Auth.TokenSecret)
	sessionCache := auth.NewSessionCache(cacheClient, cfg.Redis.SessionTTL)
	mailer := mail.New(cfg.Mail, log.With("component", "mail"))
	validate := validator.New()

	// Initialize services
	sessionService := service.NewSessionService(repos.Sessions, repos.Users, tokens, sessionCache, log.With("component", "session"))
	authService := service.NewAuthService(repos.Users, tx, sessionService, validate, cfg.Auth.BcryptCost)
	resetService := service.NewResetService(repos.Users, repos.ResetCodes, tx, mailer, validate, cfg.Mail.From, cfg.Auth.BcryptCost, log.With("component", "reset"))
	permService := service.NewPermService(sessionService, repos.Users, repos.Societies, repos.Members)
	adminService := service.NewAdminService(sessionService, repos, tx)
	societyService := service.NewSocietyService(sessionService, repos, tx, cacheClient, cfg.Redis.SocietyTTL, log.With("component", "society"))
	profileService := service.NewProfileService(sessionService, repos, validate)
	eventService := service.NewEventService(sessionService, repos, tx, validate)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, cfg, validate, log.Logger, router.Handlers{
		Auth:    handler.NewAuthHandler(authService, resetService),
		Perm:    handler.NewPermHandler(permService),
		Admin:   handler.NewAdminHandler(adminService),
		Society: handler.NewSocietyHandler(societyService),
		Profile: handler.NewProfileHandler(profileService),
		Event:   handler.NewEventHandler(eventService),
	})

	addr := ":" + cfg.ServerPort
	log.Info("server starting", "addr", addr, "swagger", "/swagger/index.html")
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server start", "error", err)
	}
}
