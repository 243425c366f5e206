package main

import (
	"log"
	"net/http"
	"time"

	"armentum/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"armentum/internal/auth"
	"armentum/internal/cache"
	"armentum/internal/config"
	"armentum/internal/db"
	"armentum/internal/handler"
	"armentum/internal/mailer"
	"armentum/internal/model"
	"armentum/internal/repository"
	"armentum/internal/router"
	"armentum/internal/service"
	"armentum/internal/storage"
)

// @title Armentum Choir API
// @version 1.0
// @description Backend for the Armentum choir: members, rehearsals, attendance, dues and public content.
// @host localhost:8000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.UserRole{},
		&model.Member{},
		&model.Rehearsal{},
		&model.Attendance{},
		&model.Due{},
		&model.PublicEvent{},
		&model.Announcement{},
		&model.StoredFile{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	roleRepo := repository.NewRoleRepository(gormDB)
	memberRepo := repository.NewMemberRepository(gormDB)
	rehearsalRepo := repository.NewRehearsalRepository(gormDB)
	attendanceRepo := repository.NewAttendanceRepository(gormDB)
	dueRepo := repository.NewDueRepository(gormDB)
	eventRepo := repository.NewEventRepository(gormDB)
	announcementRepo := repository.NewAnnouncementRepository(gormDB)
	fileRepo := repository.NewFileRepository(gormDB)

	jwtService := auth.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.AccessTokenMinutes)*time.Minute,
		time.Duration(cfg.RefreshTokenDays)*24*time.Hour,
		time.Duration(cfg.VerificationTokenHours)*time.Hour,
	)
	tokenStore := auth.NewTokenStore(cacheClient)
	gate := auth.NewGate(jwtService, userRepo)

	mail := mailer.New(cfg)
	store := storage.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey)

	authService := service.NewAuthService(userRepo, roleRepo, jwtService, tokenStore, mail, cfg)
	memberService := service.NewMemberService(memberRepo, userRepo, roleRepo)
	rehearsalService := service.NewRehearsalService(rehearsalRepo, memberRepo, attendanceRepo)
	attendanceService := service.NewAttendanceService(attendanceRepo, memberRepo, rehearsalService, memberService)
	financeService := service.NewFinanceService(dueRepo, memberService, cacheClient)
	eventService := service.NewEventService(eventRepo, cacheClient)
	contentService := service.NewContentService(announcementRepo, fileRepo, store)

	router.Register(e, cfg, gate, router.Handlers{
		Auth:            handler.NewAuthHandler(authService),
		Member:          handler.NewMemberHandler(memberService, financeService, attendanceService),
		Public:          handler.NewPublicHandler(eventService, contentService),
		AdminMember:     handler.NewAdminMemberHandler(memberService),
		AdminRehearsal:  handler.NewAdminRehearsalHandler(rehearsalService),
		AdminAttendance: handler.NewAdminAttendanceHandler(attendanceService),
		AdminFinance:    handler.NewAdminFinanceHandler(financeService),
		AdminEvent:      handler.NewAdminEventHandler(eventService),
		AdminContent:    handler.NewAdminContentHandler(contentService),
	})

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
