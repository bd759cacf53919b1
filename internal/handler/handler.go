package handlers

import (
	"github.com/go-playground/validator/v10"

	"mediafeed/internal/config"
	"mediafeed/internal/database"
	"mediafeed/internal/service"
)

type Handlers struct {
	AuthService service.AuthService
	PostService service.PostService
	DB          *database.DB
	Cfg         *config.Config
	Validate    *validator.Validate
}

func NewHandlers(services *service.Service, db *database.DB, config *config.Config) *Handlers {
	return &Handlers{
		AuthService: services.Auth,
		PostService: services.Post,
		DB:          db,
		Cfg:         config,
		Validate:    validator.New(),
	}
}
