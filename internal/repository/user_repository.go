package repository

import (
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"media-shop-server/config"
	"media-shop-server/internal/model"
	"media-shop-server/internal/util"
)

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateUser : сохраняет нового пользователя
func (r *UserRepository) CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO users (uuid, email, password_hash, tokens)
	VALUES ($1, $2, $3, $4)
	RETURNING uuid, email, tokens, created_at
	`

	createdUser := &model.User{}
	err := exec.QueryRowxContext(ctx, query, user.UUID, user.Email, user.PasswordHash, user.Tokens).
		Scan(&createdUser.UUID, &createdUser.Email, &createdUser.Tokens, &createdUser.CreatedAt)

	if err != nil {
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return createdUser, nil
}

// FindByUUID : ищет пользователя по UUID
func (r *UserRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error) {
	query := `SELECT uuid, email, password_hash, tokens, created_at FROM users WHERE uuid = $1`
	var user model.User
	err := sqlx.GetContext(ctx, exec, &user, query, uuid)
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return &user, nil
}

// FindByEmail : ищет пользователя по email, (nil, nil) если такого нет
func (r *UserRepository) FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error) {
	query := `SELECT uuid, email, password_hash, tokens, created_at FROM users WHERE email = $1`
	var user model.User
	err := sqlx.GetContext(ctx, exec, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось найти пользователя по email", err)
	}
	return &user, nil
}

// Exists : проверяет, существует ли пользователь по UUID
func (r *UserRepository) Exists(ctx context.Context, exec sqlx.ExtContext, uuid string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE uuid = $1)`
	err := sqlx.GetContext(ctx, exec, &exists, query, uuid)
	if err != nil {
		return false, util.LogError("[UserRepo] ошибка проверки существования пользователя", err)
	}
	return exists, nil
}

// GetBalance : текущий баланс токенов
func (r *UserRepository) GetBalance(ctx context.Context, exec sqlx.ExtContext, uuid string) (float64, error) {
	var balance float64
	query := `SELECT tokens FROM users WHERE uuid = $1`
	err := sqlx.GetContext(ctx, exec, &balance, query, uuid)
	if err != nil {
		return 0, util.LogError("[UserRepo] не удалось получить баланс", err)
	}
	return balance, nil
}

// GetBalanceForUpdate : баланс с блокировкой строки до конца транзакции
func (r *UserRepository) GetBalanceForUpdate(ctx context.Context, exec sqlx.ExtContext, uuid string) (float64, error) {
	var balance float64
	query := `SELECT tokens FROM users WHERE uuid = $1 FOR UPDATE`
	err := sqlx.GetContext(ctx, exec, &balance, query, uuid)
	if err != nil {
		return 0, util.LogError("[UserRepo] не удалось заблокировать баланс", err)
	}
	return balance, nil
}

// UpdateBalance : записывает новый баланс токенов
func (r *UserRepository) UpdateBalance(ctx context.Context, exec sqlx.ExtContext, uuid string, newBalance float64) error {
	query := `UPDATE users SET tokens = $2 WHERE uuid = $1`
	_, err := exec.ExecContext(ctx, query, uuid, newBalance)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить баланс", err)
	}
	return nil
}
