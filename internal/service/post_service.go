package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"mediafeed/internal/config"
	"mediafeed/internal/models"
	"mediafeed/internal/repository"
	"mediafeed/internal/storage"
)

// Допустимые расширения файлов по видам медиа
var (
	imageExtensions = map[string]bool{
		".png":  true,
		".jpg":  true,
		".jpeg": true,
	}

	videoExtensions = map[string]bool{
		".mp4":  true,
		".avi":  true,
		".mov":  true,
		".mkv":  true,
		".webm": true,
	}
)

type PostService interface {
	UploadMedia(ctx context.Context, user *models.User, fileName string, file io.Reader, size int64, caption string) (*models.Post, error)
	Feed(ctx context.Context) ([]models.Post, error)
	DeletePost(ctx context.Context, user *models.User, postID string) error
}

type postService struct {
	postRepo repository.PostRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewPostService(postRepo repository.PostRepository, storage storage.Storage, cfg *config.Config) PostService {
	return &postService{
		postRepo: postRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

// ClassifyMedia определяет вид медиа по расширению файла
func ClassifyMedia(fileName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))

	switch {
	case imageExtensions[ext]:
		return models.MediaKindImage, nil
	case videoExtensions[ext]:
		return models.MediaKindVideo, nil
	default:
		return "", fmt.Errorf("%w: %s", models.ErrUnsupportedMedia, fileName)
	}
}

// UploadMedia проверяет тип файла, отправляет его в хранилище и только
// после успешной загрузки создает запись поста: видимый пост всегда
// ссылается на существующий файл
func (p *postService) UploadMedia(ctx context.Context, user *models.User, fileName string, file io.Reader, size int64, caption string) (*models.Post, error) {
	mediaKind, err := ClassifyMedia(fileName)
	if err != nil {
		return nil, err
	}

	objectName, mediaURL, err := p.storage.UploadMedia(ctx, user.UserID, fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUploadFailed, err)
	}

	post := &models.Post{
		OwnerID:   user.UserID,
		Caption:   caption,
		MediaURL:  mediaURL,
		MediaKind: mediaKind,
		FileName:  fileName,
	}

	err = p.postRepo.Create(ctx, post)
	if err != nil {
		// запись не создалась - подчищаем уже загруженный файл
		p.storage.DeleteMedia(ctx, objectName)
		return nil, fmt.Errorf("ошибка сохранения поста в БД: %w", err)
	}

	return post, nil
}

func (p *postService) Feed(ctx context.Context) ([]models.Post, error) {
	posts, err := p.postRepo.GetFeed(ctx)
	if err != nil {
		return nil, err
	}

	return posts, nil
}

// DeletePost удаляет пост, если он принадлежит вызывающему.
// Файл в хранилище не трогаем: осиротевший объект - осознанный компромисс
func (p *postService) DeletePost(ctx context.Context, user *models.User, postID string) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.OwnerID != user.UserID {
		return fmt.Errorf("%w: пост принадлежит другому пользователю", models.ErrForbidden)
	}

	return p.postRepo.Delete(ctx, postID)
}
