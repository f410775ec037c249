package app

import (
	"log"

	"myblog/internal/config"
	"myblog/internal/database"
	"myblog/internal/repository"
	"myblog/internal/service"
	"myblog/internal/storage"
)

// App поднимает зависимости сервиса: Postgres, MinIO, репозитории и службы.
// Без БД и хранилища блобов работать не с чем, поэтому любая ошибка здесь фатальна.
func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}
	log.Printf("Хранилище блобов готово: bucket=%s", cfg.MinIO.BucketName)

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, minioClient)

	return db, repo, services
}
