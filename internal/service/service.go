package service

import (
	"myblog/internal/config"
	"myblog/internal/repository"
	"myblog/internal/storage"
)

type Service struct {
	Auth    AuthService
	Post    PostService
	Comment CommentService
	Stats   StatsService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:    NewAuthService(rep.User, cfg),
		Post:    NewPostService(rep.Post, rep.Comment, storage, cfg),
		Comment: NewCommentService(rep.Comment, rep.Post, storage, cfg),
		Stats:   NewStatsService(rep.Stats),
	}
}
