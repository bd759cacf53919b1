package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"mediafeed/internal/models"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

// Create вставляет пост одним INSERT: URL и метаданные фиксируются атомарно,
// читатель не может увидеть пост без media_url
func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	post.CreatedAt = time.Now()

	query := `
		INSERT INTO posts (post_id, owner_id, caption, media_url, media_kind, file_name, created_at)
		VALUES (:post_id, :owner_id, :caption, :media_url, :media_kind, :file_name, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: пост с ID %s", models.ErrNotFound, postID)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

// GetFeed возвращает все посты, новые первыми; при равных created_at
// порядок стабилизируется по seq (позже вставленный - выше)
func (r *PostRepositoryImpl) GetFeed(ctx context.Context) ([]models.Post, error) {
	query := `SELECT * FROM posts ORDER BY created_at DESC, seq DESC`

	posts := []models.Post{}
	err := r.db.SelectContext(ctx, &posts, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении ленты: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: пост с ID %s", models.ErrNotFound, postID)
	}

	return nil
}
