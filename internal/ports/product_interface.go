package ports

import (
	"context"
	"github.com/jmoiron/sqlx"
	"media-shop-server/internal/model"
)

// ProductRepository : SQL слой каталога.
// GetByID возвращает (nil, nil), если продукт не существует
type ProductRepository interface {
	GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.Product, error)
	List(ctx context.Context, exec sqlx.ExtContext, filter model.ProductFilter) ([]model.Product, error)
	Create(ctx context.Context, exec sqlx.ExtContext, product *model.Product) (*model.Product, error)
	Delete(ctx context.Context, exec sqlx.ExtContext, id int64) (string, error)
}

type ProductService interface {
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, string, error)
	DeleteProduct(ctx context.Context, id int64) error
}
