package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mediafeed/internal/config"
	"mediafeed/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:        "test-secret-key",
		AccessTokenDuration: time.Hour,
		VerifyTokenDuration: 24 * time.Hour,
		ResetTokenDuration:  30 * time.Minute,
	}
}

func activeUser() *models.User {
	return &models.User{
		UserID:   "user-1",
		Email:    "test@example.com",
		IsActive: true,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Успешная регистрация", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, testConfig())

		userRepo.On("GetUserByEmail", ctx, "new@example.com").Return(nil, models.ErrNotFound)
		userRepo.On("CreateUser", ctx, mock.AnythingOfType("*models.User"), "password123").Return(nil)

		user, err := svc.Register(ctx, "new@example.com", "password123")

		require.NoError(t, err)
		assert.Equal(t, "new@example.com", user.Email)
		assert.True(t, user.IsActive)
		assert.False(t, user.IsVerified)
		userRepo.AssertExpectations(t)
	})

	t.Run("Email уже существует", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, testConfig())

		userRepo.On("GetUserByEmail", ctx, "test@example.com").Return(activeUser(), nil)

		user, err := svc.Register(ctx, "test@example.com", "password123")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, models.ErrEmailTaken)
		userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Слишком короткий пароль", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, testConfig())

		user, err := svc.Register(ctx, "new@example.com", "123")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, models.ErrValidation)
		userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthService_LoginAndResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("Выданный токен разрешается в того же пользователя", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, testConfig())
		user := activeUser()

		userRepo.On("VerifyPassword", ctx, user.Email, "password123").Return(user, nil)
		userRepo.On("GetUserByID", ctx, user.UserID).Return(user, nil)

		loggedIn, token, err := svc.Login(ctx, user.Email, "password123")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		assert.Equal(t, user.UserID, loggedIn.UserID)

		resolved, err := svc.ResolveToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, user.UserID, resolved.UserID)
	})

	t.Run("Неверные учетные данные дают общую ошибку", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, testConfig())

		userRepo.On("VerifyPassword", ctx, "test@example.com", "wrong").
			Return(nil, models.ErrAuth)

		_, token, err := svc.Login(ctx, "test@example.com", "wrong")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, models.ErrAuth)
	})

	t.Run("Деактивированный пользователь не проходит", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, testConfig())
		user := activeUser()
		user.IsActive = false

		userRepo.On("VerifyPassword", ctx, user.Email, "password123").Return(user, nil)

		_, token, err := svc.Login(ctx, user.Email, "password123")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, models.ErrAuth)
	})
}

func TestAuthService_ResolveToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Просроченный токен отклоняется", func(t *testing.T) {
		cfg := testConfig()
		cfg.AccessTokenDuration = -time.Minute

		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, cfg)
		user := activeUser()

		userRepo.On("VerifyPassword", ctx, user.Email, "password123").Return(user, nil)

		_, token, err := svc.Login(ctx, user.Email, "password123")
		require.NoError(t, err)

		resolved, err := svc.ResolveToken(ctx, token)

		assert.Nil(t, resolved)
		assert.ErrorIs(t, err, models.ErrAuth)
		userRepo.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
	})

	t.Run("Мусор вместо токена отклоняется", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, testConfig())

		resolved, err := svc.ResolveToken(ctx, "not-a-token")

		assert.Nil(t, resolved)
		assert.ErrorIs(t, err, models.ErrAuth)
	})

	t.Run("Токен с чужой подписью отклоняется", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, testConfig())
		user := activeUser()

		otherCfg := testConfig()
		otherCfg.JWTSecretKey = "other-secret-key"
		otherSvc := NewAuthService(userRepo, otherCfg)

		userRepo.On("VerifyPassword", ctx, user.Email, "password123").Return(user, nil)
		_, token, err := otherSvc.Login(ctx, user.Email, "password123")
		require.NoError(t, err)

		resolved, err := svc.ResolveToken(ctx, token)

		assert.Nil(t, resolved)
		assert.ErrorIs(t, err, models.ErrAuth)
	})

	t.Run("Verification токен не принимается как access", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, testConfig())
		user := activeUser()

		token, err := svc.VerificationToken(user)
		require.NoError(t, err)

		resolved, err := svc.ResolveToken(ctx, token)

		assert.Nil(t, resolved)
		assert.ErrorIs(t, err, models.ErrAuth)
	})

	t.Run("Деактивированный пользователь не разрешается", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, testConfig())
		user := activeUser()

		userRepo.On("VerifyPassword", ctx, user.Email, "password123").Return(user, nil)

		_, token, err := svc.Login(ctx, user.Email, "password123")
		require.NoError(t, err)

		inactive := activeUser()
		inactive.IsActive = false
		userRepo.On("GetUserByID", ctx, user.UserID).Return(inactive, nil)

		resolved, err := svc.ResolveToken(ctx, token)

		assert.Nil(t, resolved)
		assert.ErrorIs(t, err, models.ErrAuth)
	})
}

func TestAuthService_ConfirmEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("Успешное подтверждение email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, testConfig())
		user := activeUser()

		token, err := svc.VerificationToken(user)
		require.NoError(t, err)

		userRepo.On("SetVerified", ctx, user.UserID).Return(nil)

		err = svc.ConfirmEmail(ctx, token)

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("Access токен не подтверждает email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, testConfig())
		user := activeUser()

		userRepo.On("VerifyPassword", ctx, user.Email, "password123").Return(user, nil)

		_, accessToken, err := svc.Login(ctx, user.Email, "password123")
		require.NoError(t, err)

		err = svc.ConfirmEmail(ctx, accessToken)

		assert.ErrorIs(t, err, models.ErrAuth)
		userRepo.AssertNotCalled(t, "SetVerified", mock.Anything, mock.Anything)
	})
}

func TestAuthService_PasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("Сброс пароля по reset токену", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, testConfig())
		user := activeUser()

		userRepo.On("GetUserByEmail", ctx, user.Email).Return(user, nil)
		userRepo.On("UpdatePassword", ctx, user.UserID, "new-password").Return(nil)

		token, err := svc.RequestPasswordReset(ctx, user.Email)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		err = svc.ResetPassword(ctx, token, "new-password")

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("Неизвестный email не раскрывается", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, testConfig())

		userRepo.On("GetUserByEmail", ctx, "missing@example.com").Return(nil, models.ErrNotFound)

		token, err := svc.RequestPasswordReset(ctx, "missing@example.com")

		assert.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("Слишком короткий новый пароль", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, testConfig())
		user := activeUser()

		userRepo.On("GetUserByEmail", ctx, user.Email).Return(user, nil)

		token, err := svc.RequestPasswordReset(ctx, user.Email)
		require.NoError(t, err)

		err = svc.ResetPassword(ctx, token, "123")

		assert.ErrorIs(t, err, models.ErrValidation)
		userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})
}
