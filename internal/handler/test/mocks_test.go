package test

import (
	"context"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/mock"

	"mediafeed/internal/config"
	handlers "mediafeed/internal/handler"
	"mediafeed/internal/models"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) ResolveToken(ctx context.Context, tokenString string) (*models.User, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) VerificationToken(user *models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ConfirmEmail(ctx context.Context, tokenString string) error {
	args := m.Called(ctx, tokenString)
	return args.Error(0)
}

func (m *MockAuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	args := m.Called(ctx, tokenString, newPassword)
	return args.Error(0)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) UploadMedia(ctx context.Context, user *models.User, fileName string, file io.Reader, size int64, caption string) (*models.Post, error) {
	args := m.Called(ctx, user, fileName, file, size, caption)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Feed(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, user *models.User, postID string) error {
	args := m.Called(ctx, user, postID)
	return args.Error(0)
}

func createTestHandler(authService *MockAuthService, postService *MockPostService) *handlers.Handlers {
	cfg := &config.Config{
		JWTSecretKey:  "test-secret-key",
		ServerPort:    8080,
		MaxUploadSize: 10 * 1024 * 1024,
	}

	return &handlers.Handlers{
		AuthService: authService,
		PostService: postService,
		Cfg:         cfg,
		Validate:    validator.New(),
	}
}
