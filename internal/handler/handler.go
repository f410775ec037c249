package handlers

import (
	"github.com/go-playground/validator/v10"
	"myblog/internal/config"
	"myblog/internal/repository"
	"myblog/internal/service"
)

type Handlers struct {
	AuthService    service.AuthService
	PostService    service.PostService
	CommentService service.CommentService
	StatsService   service.StatsService
	UserRepo       repository.UserRepository
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    service.Auth,
		PostService:    service.Post,
		CommentService: service.Comment,
		StatsService:   service.Stats,
		UserRepo:       repo.User,
		Cfg:            config,
		Validate:       validator.New(),
	}
}
