package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"media-shop-server/config"
	"media-shop-server/internal/model"
	"media-shop-server/internal/util"
	"time"
)

type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetProduct(ctx context.Context, product *model.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return util.LogError("ошибка сериализации продукта", err)
	}

	cmd := r.client.Client.Set(ctx, r.key(product.ID), data, r.ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения в Redis", err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}

	return nil
}

func (r *CacheRepository) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	val, err := r.client.Client.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения продукта из Redis", err)
	}

	var product model.Product
	if err := json.Unmarshal([]byte(val), &product); err != nil {
		return nil, util.LogError("ошибка десериализации продукта из кэша", err)
	}
	return &product, nil
}

func (r *CacheRepository) DeleteProduct(ctx context.Context, id int64) error {
	if err := r.client.Client.Del(ctx, r.key(id)).Err(); err != nil {
		return util.LogError("ошибка удаления продукта из Redis", err)
	}
	return nil
}

func (r *CacheRepository) key(id int64) string {
	return fmt.Sprintf("product:%d", id)
}
