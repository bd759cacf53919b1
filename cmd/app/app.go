package app

import (
	"context"

	"go.uber.org/zap"

	"mediafeed/internal/config"
	"mediafeed/internal/database"
	"mediafeed/internal/repository"
	"mediafeed/internal/service"
	"mediafeed/internal/storage"
)

func App(cfg *config.Config, logger *zap.Logger) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("не удалось подключиться к БД", zap.Error(err))
	}

	if err := db.RunMigrations("migrations/001_create_tables.sql"); err != nil {
		logger.Warn("ошибка при применении миграций", zap.Error(err))
	}

	if err := db.HealthCheck(); err != nil {
		logger.Fatal("проверка БД не пройдена", zap.Error(err))
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		logger.Fatal("не удалось инициализировать MinIO", zap.Error(err))
	}

	if err := minioClient.EnsureBucket(context.Background()); err != nil {
		logger.Fatal("не удалось подготовить bucket", zap.Error(err))
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient)

	return db, repo, services
}
