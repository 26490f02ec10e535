package ports

import (
	"context"
	"media-shop-server/internal/model"
)

// ProductCacheRepository : Redis слой
type ProductCacheRepository interface {
	SetProduct(ctx context.Context, product *model.Product) error
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}
