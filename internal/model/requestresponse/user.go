package requestresponse

import (
	"media-shop-server/internal/model"
	"time"
)

// RegisterRequest : тело запроса на регистрацию
type RegisterRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"P@ssw0rd123"`
}

// UserResponse : профиль пользователя для JSON-ответа
type UserResponse struct {
	UUID      string  `json:"uuid" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
	Email     string  `json:"email" example:"user@example.com"`
	Tokens    float64 `json:"tokens" example:"10.5"`
	CreatedAt string  `json:"created_at" example:"2025-08-23T12:34:56Z"`
}

// UserResponseFromModel : конвертирует model.User в UserResponse
func UserResponseFromModel(user *model.User) UserResponse {
	return UserResponse{
		UUID:      user.UUID,
		Email:     user.Email,
		Tokens:    user.Tokens,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

// BalanceResponse : баланс токенов пользователя
type BalanceResponse struct {
	UUID   string  `json:"uuid" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
	Tokens float64 `json:"tokens" example:"10.5"`
}

// UpdateBalanceRequest : запрос администратора на пополнение баланса
type UpdateBalanceRequest struct {
	Tokens float64 `json:"tokens" example:"25.0"`
}
