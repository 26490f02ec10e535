package ports

import (
	"context"
	"github.com/jmoiron/sqlx"
	"media-shop-server/internal/model"
)

// UserRepository : SQL слой пользователей и баланса токенов.
// GetBalanceForUpdate читает баланс с блокировкой строки (FOR UPDATE),
// чтобы параллельные покупки одного покупателя сериализовались
type UserRepository interface {
	CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error)
	FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error)
	FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error)
	Exists(ctx context.Context, exec sqlx.ExtContext, uuid string) (bool, error)
	GetBalance(ctx context.Context, exec sqlx.ExtContext, uuid string) (float64, error)
	GetBalanceForUpdate(ctx context.Context, exec sqlx.ExtContext, uuid string) (float64, error)
	UpdateBalance(ctx context.Context, exec sqlx.ExtContext, uuid string, newBalance float64) error
}

type UserService interface {
	Register(ctx context.Context, email string, password string, userAgent string, ipAddress string) (*model.TokensPair, error)
	GetUser(ctx context.Context, uuid string) (*model.User, error)
	GetBalance(ctx context.Context, uuid string) (float64, error)
	UpdateBalance(ctx context.Context, uuid string, newBalance float64) (float64, error)
}
