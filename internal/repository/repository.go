package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"mediafeed/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	SetVerified(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID, newPassword string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetFeed(ctx context.Context) ([]models.Post, error)
	Delete(ctx context.Context, postID string) error
}

type Repository struct {
	User UserRepository
	Post PostRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User: NewUserRepository(db),
		Post: NewPostRepository(db),
	}
}
