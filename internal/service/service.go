package service

import (
	"mediafeed/internal/config"
	"mediafeed/internal/repository"
	"mediafeed/internal/storage"
)

type Service struct {
	Auth AuthService
	Post PostService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth: NewAuthService(rep.User, cfg),
		Post: NewPostService(rep.Post, storage, cfg),
	}
}
