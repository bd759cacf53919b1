package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"mediafeed/internal/models"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	UserId     string `json:"userId"`
	Email      string `json:"email"`
	IsActive   bool   `json:"isActive"`
	IsVerified bool   `json:"isVerified"`
}

type RegisterResponse struct {
	User              UserResponse `json:"user"`
	VerificationToken string       `json:"verificationToken"`
}

type AuthResponse struct {
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}

func userResponse(user *models.User) UserResponse {
	return UserResponse{
		UserId:     user.UserID,
		Email:      user.Email,
		IsActive:   user.IsActive,
		IsVerified: user.IsVerified,
	}
}

// currentUser разрешает Bearer-токен запроса в пользователя.
// Вызывается явно в начале каждого защищенного хендлера
func (h *Handlers) currentUser(r *http.Request) (*models.User, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errors.New("требуется авторизация")
	}

	// Checking the "Bearer <token>" format
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errors.New("неверный формат токена")
	}

	return h.AuthService.ResolveToken(r.Context(), parts[1])
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		if strings.Contains(err.Error(), "Email") {
			WriteError(w, "Неверный формат email", http.StatusBadRequest)
		} else {
			WriteError(w, "Пароль должен быть не менее 6 символов", http.StatusBadRequest)
		}
		return
	}

	// registering a user in the service
	user, err := h.AuthService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			WriteError(w, "Email уже существует", http.StatusConflict)
		} else if errors.Is(err, models.ErrValidation) {
			WriteError(w, "Неверные данные", http.StatusBadRequest)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	// issuing a token to confirm email (mailer is out of scope)
	verificationToken, err := h.AuthService.VerificationToken(user)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteJSON(w, RegisterResponse{
		User:              userResponse(user),
		VerificationToken: verificationToken,
	}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		if strings.Contains(err.Error(), "Email") {
			WriteError(w, "Неверный формат email", http.StatusBadRequest)
		} else {
			WriteError(w, "Неверные данные", http.StatusBadRequest)
		}
		return
	}

	user, accessToken, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// единый ответ для всех причин отказа
		WriteError(w, "Неверный email или пароль", http.StatusUnauthorized)
		return
	}

	WriteJSON(w, AuthResponse{
		AccessToken: accessToken,
		User:        userResponse(user),
	}, http.StatusOK)
}

func (h *Handlers) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if req.Token == "" {
		WriteError(w, "Отсутствует token", http.StatusBadRequest)
		return
	}

	if err := h.AuthService.ConfirmEmail(r.Context(), req.Token); err != nil {
		if errors.Is(err, models.ErrAuth) {
			WriteError(w, "Токен истек или недействителен", http.StatusUnauthorized)
		} else if errors.Is(err, models.ErrNotFound) {
			WriteError(w, "Пользователь не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, MessageResponse{Message: "Email подтвержден"}, http.StatusOK)
}

func (h *Handlers) RecoverPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверный формат email", http.StatusBadRequest)
		return
	}

	resetToken, err := h.AuthService.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// ответ одинаковый для существующего и несуществующего email
	WriteJSON(w, struct {
		Message    string `json:"message"`
		ResetToken string `json:"resetToken,omitempty"`
	}{
		Message:    "Если аккаунт существует, выдан токен сброса пароля",
		ResetToken: resetToken,
	}, http.StatusOK)
}

func (h *Handlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required,min=6"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	if err := h.AuthService.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, models.ErrAuth) {
			WriteError(w, "Токен истек или недействителен", http.StatusUnauthorized)
		} else if errors.Is(err, models.ErrValidation) {
			WriteError(w, "Пароль должен быть не менее 6 символов", http.StatusBadRequest)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, MessageResponse{Message: "Пароль обновлен"}, http.StatusOK)
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	WriteJSON(w, userResponse(user), http.StatusOK)
}
