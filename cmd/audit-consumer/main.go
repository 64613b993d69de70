// Package main drains screening audit events from Kafka into MySQL.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"gramhealth-go/internal/config"
	"gramhealth-go/internal/model"
	"gramhealth-go/internal/repository"
	"gramhealth-go/internal/service"
	"gramhealth-go/pkg/database"
	"gramhealth-go/pkg/kafka"
	"gramhealth-go/pkg/log"
)

func main() {
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()

	if !cfg.Kafka.Enabled {
		log.Info("kafka is disabled in config, nothing to consume")
		return
	}

	database.InitMySQL(cfg.Database.MySQL.DSN, &model.ScreeningAudit{})
	auditService := service.NewAuditService(repository.NewAuditRepository(database.DB))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := kafka.StartConsumer(ctx, cfg.Kafka, auditService); err != nil {
		log.Fatal("audit consumer stopped", err)
	}
	log.Info("audit consumer stopped")
}
