package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"

	"mediafeed/internal/config"
	"mediafeed/internal/models"
	"mediafeed/internal/repository"
)

// Скоупы токенов. Токен одного скоупа никогда не принимается там,
// где ожидается другой
const (
	scopeAccess = "access"
	scopeVerify = "verify"
	scopeReset  = "reset"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ResolveToken(ctx context.Context, tokenString string) (*models.User, error)
	VerificationToken(user *models.User) (string, error)
	ConfirmEmail(ctx context.Context, tokenString string) error
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, tokenString, newPassword string) error
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if utf8.RuneCountInString(password) < 6 {
		return nil, fmt.Errorf("%w: пароль должен быть не менее 6 символов", models.ErrValidation)
	}

	// быстрая проверка, гонку закрывает UNIQUE в репозитории
	existingUser, err := s.userRepo.GetUserByEmail(ctx, email)
	if err == nil && existingUser != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrEmailTaken, email)
	}

	user := &models.User{
		Email:    email,
		IsActive: true,
	}

	err = s.userRepo.CreateUser(ctx, user, password)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		// причина (нет пользователя / неверный пароль) наружу не отдается
		return nil, "", fmt.Errorf("%w: %v", models.ErrAuth, err)
	}

	if !user.IsActive {
		return nil, "", fmt.Errorf("%w: пользователь деактивирован", models.ErrAuth)
	}

	accessToken, err := s.generateToken(user.UserID, scopeAccess, s.cfg.AccessTokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка генерации access token: %w", err)
	}

	return user, accessToken, nil
}

// ResolveToken проверяет подпись, срок и скоуп токена и возвращает
// активного пользователя. Вызывается в начале каждой защищенной операции,
// состояния не меняет
func (s *authService) ResolveToken(ctx context.Context, tokenString string) (*models.User, error) {
	userID, err := s.parseToken(tokenString, scopeAccess)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrAuth, err)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("%w: пользователь деактивирован", models.ErrAuth)
	}

	return user, nil
}

func (s *authService) VerificationToken(user *models.User) (string, error) {
	token, err := s.generateToken(user.UserID, scopeVerify, s.cfg.VerifyTokenDuration)
	if err != nil {
		return "", fmt.Errorf("ошибка генерации verification token: %w", err)
	}
	return token, nil
}

func (s *authService) ConfirmEmail(ctx context.Context, tokenString string) error {
	userID, err := s.parseToken(tokenString, scopeVerify)
	if err != nil {
		return err
	}

	return s.userRepo.SetVerified(ctx, userID)
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// не раскрываем, существует ли аккаунт
			return "", nil
		}
		return "", err
	}

	token, err := s.generateToken(user.UserID, scopeReset, s.cfg.ResetTokenDuration)
	if err != nil {
		return "", fmt.Errorf("ошибка генерации reset token: %w", err)
	}

	return token, nil
}

func (s *authService) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	if utf8.RuneCountInString(newPassword) < 6 {
		return fmt.Errorf("%w: пароль должен быть не менее 6 символов", models.ErrValidation)
	}

	userID, err := s.parseToken(tokenString, scopeReset)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, userID, newPassword)
}

func (s *authService) generateToken(userID, scope string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"scope":  scope,
		"exp":    time.Now().Add(ttl).Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

func (s *authService) parseToken(tokenString, wantScope string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})

	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrAuth, err)
	}

	if !token.Valid {
		return "", fmt.Errorf("%w: недействительный токен", models.ErrAuth)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("%w: неверный формат claims", models.ErrAuth)
	}

	scope, _ := claims["scope"].(string)
	if scope != wantScope {
		return "", fmt.Errorf("%w: токен выдан для другой операции", models.ErrAuth)
	}

	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("%w: неверный формат claims", models.ErrAuth)
	}

	return userID, nil
}
