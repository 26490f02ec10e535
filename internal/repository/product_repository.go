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

type ProductRepository struct {
	*config.Database
}

func NewProductRepository(database *config.Database) *ProductRepository {
	return &ProductRepository{database}
}

// GetByID : возвращает продукт или (nil, nil), если его не существует
func (r *ProductRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.Product, error) {
	query := `
		SELECT id_product, title, type, year, format, cost, path
		FROM products
		WHERE id_product = $1
	`

	var product model.Product
	err := sqlx.GetContext(ctx, exec, &product, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, util.LogError("[ProductRepo] не удалось получить продукт", err)
	}

	return &product, nil
}

// List : выборка каталога с необязательными фильтрами
func (r *ProductRepository) List(ctx context.Context, exec sqlx.ExtContext, filter model.ProductFilter) ([]model.Product, error) {
	query := `
		SELECT id_product, title, type, year, format, cost, path
		FROM products
		WHERE ($1 = '' OR type = $1)
		  AND ($2 = 0 OR year = $2)
		  AND ($3 = '' OR format = $3)
		ORDER BY id_product
	`

	products := []model.Product{}
	err := sqlx.SelectContext(ctx, exec, &products, query, string(filter.Type), filter.Year, string(filter.Format))
	if err != nil {
		return nil, util.LogError("[ProductRepo] не удалось получить список продуктов", err)
	}

	return products, nil
}

// Create : сохраняет новый продукт
func (r *ProductRepository) Create(ctx context.Context, exec sqlx.ExtContext, product *model.Product) (*model.Product, error) {
	query := `
		INSERT INTO products (title, type, year, format, cost, path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id_product, title, type, year, format, cost, path
	`

	created := &model.Product{}
	err := exec.QueryRowxContext(ctx, query,
		product.Title,
		product.Type,
		product.Year,
		product.Format,
		product.Cost,
		product.Path,
	).StructScan(created)

	if err != nil {
		return nil, util.LogError("[ProductRepo] ошибка вставки данных в БД", err)
	}

	return created, nil
}

// Delete : удаляет продукт, возвращает путь мастер-файла
func (r *ProductRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) (string, error) {
	query := `
		DELETE FROM products
		WHERE id_product = $1
		RETURNING path
	`

	var path string
	err := sqlx.GetContext(ctx, exec, &path, query, id)
	if err != nil {
		return "", util.LogError("[ProductRepo] не удалось удалить продукт", err)
	}

	return path, nil
}
