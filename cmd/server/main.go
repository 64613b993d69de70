// Package main is the entry point of the screening API.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"gramhealth-go/internal/config"
	"gramhealth-go/internal/handler"
	"gramhealth-go/internal/model"
	"gramhealth-go/internal/pipeline"
	"gramhealth-go/internal/report"
	"gramhealth-go/internal/repository"
	"gramhealth-go/internal/service"
	"gramhealth-go/pkg/database"
	"gramhealth-go/pkg/kafka"
	"gramhealth-go/pkg/log"
	"gramhealth-go/pkg/storage"
	"gramhealth-go/pkg/token"
)

func main() {
	// 1. config
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. logger
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()
	log.Info("logger initialized")

	// 3. read-only resources, loaded once
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), time.Minute)
	resources, err := pipeline.LoadResources(startupCtx, cfg)
	cancelStartup()
	if err != nil {
		log.Fatal("failed to load resources", err)
	}

	// 4. repositories
	var userRepo repository.UserRepository
	switch cfg.Auth.Store {
	case "mysql":
		database.InitMySQL(cfg.Database.MySQL.DSN, &model.User{})
		userRepo = repository.NewUserRepository(database.DB)
	default:
		userRepo = repository.NewFileUserRepository(cfg.Auth.UsersFile)
		log.Infof("using file credential store %s", cfg.Auth.UsersFile)
	}

	var sessionRepo repository.SessionRepository
	if cfg.Database.Redis.Addr != "" {
		database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
		sessionRepo = repository.NewRedisSessionRepository(database.RDB)
	} else {
		sessionRepo = repository.NewMemorySessionRepository()
		log.Warnf("redis not configured, token revocations are kept in memory")
	}

	// 5. optional report archive and audit events
	var archive service.ReportArchive
	if cfg.MinIO.Enabled {
		storage.InitMinIO(cfg.MinIO)
		archive = storage.NewReportArchive(storage.MinioClient, cfg.MinIO.BucketName,
			time.Duration(cfg.MinIO.PresignExpireHours)*time.Hour)
	}

	var publisher service.AuditPublisher
	if cfg.Kafka.Enabled {
		p := kafka.NewPublisher(cfg.Kafka)
		defer func() {
			if err := p.Close(); err != nil {
				log.Errorf("closing kafka publisher failed: %v", err)
			}
		}()
		publisher = p
	}

	// 6. services
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	userService := service.NewUserService(userRepo, sessionRepo, jwtManager)
	processor := pipeline.NewProcessor(resources, cfg.Resources.TopK, report.NewCompiler(cfg.Report.Title))
	screeningService := service.NewScreeningService(processor, publisher, archive, cfg.Report.Filename)

	// 7. routes
	gin.SetMode(cfg.Server.Mode)
	r := handler.NewRouter(userService, screeningService)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("server shutdown failed: %v", err)
		return
	}
	log.Info("server stopped")
}
