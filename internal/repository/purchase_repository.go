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

type PurchaseRepository struct {
	*config.Database
}

func NewPurchaseRepository(database *config.Database) *PurchaseRepository {
	return &PurchaseRepository{database}
}

// Create : сохраняет новую покупку
func (r *PurchaseRepository) Create(ctx context.Context, exec sqlx.ExtContext, purchase *model.Purchase) (*model.Purchase, error) {
	query := `
		INSERT INTO purchases (buyer_uuid, product_id, type, recipient_uuid, recipient_email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id_purchase, buyer_uuid, product_id, type, recipient_uuid, recipient_email, created_at
	`

	created := &model.Purchase{}
	err := exec.QueryRowxContext(ctx, query,
		purchase.BuyerUUID,
		purchase.ProductID,
		purchase.Type,
		purchase.RecipientUUID,
		purchase.RecipientEmail,
	).StructScan(created)

	if err != nil {
		return nil, util.LogError("[PurchaseRepo] ошибка вставки данных в БД", err)
	}

	return created, nil
}

// GetByID : возвращает покупку по ID
func (r *PurchaseRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.Purchase, error) {
	query := `
		SELECT id_purchase, buyer_uuid, product_id, type, recipient_uuid, recipient_email, created_at
		FROM purchases
		WHERE id_purchase = $1
	`

	var purchase model.Purchase
	err := sqlx.GetContext(ctx, exec, &purchase, query, id)
	if err != nil {
		return nil, util.LogError("[PurchaseRepo] не удалось найти покупку", err)
	}

	return &purchase, nil
}

// FindByBuyerAndProduct : последняя покупка пары (покупатель, продукт)
// или (nil, nil), если покупки не было
func (r *PurchaseRepository) FindByBuyerAndProduct(ctx context.Context, exec sqlx.ExtContext, buyerUUID string, productID int64) (*model.Purchase, error) {
	query := `
		SELECT id_purchase, buyer_uuid, product_id, type, recipient_uuid, recipient_email, created_at
		FROM purchases
		WHERE buyer_uuid = $1 AND product_id = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var purchase model.Purchase
	err := sqlx.GetContext(ctx, exec, &purchase, query, buyerUUID, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, util.LogError("[PurchaseRepo] ошибка поиска покупки", err)
	}

	return &purchase, nil
}

// ListByBuyer : история покупок, append-only, от новых к старым
func (r *PurchaseRepository) ListByBuyer(ctx context.Context, exec sqlx.ExtContext, buyerUUID string, purchaseType model.PurchaseType) ([]model.Purchase, error) {
	query := `
		SELECT id_purchase, buyer_uuid, product_id, type, recipient_uuid, recipient_email, created_at
		FROM purchases
		WHERE buyer_uuid = $1 AND ($2 = '' OR type = $2)
		ORDER BY created_at DESC
	`

	purchases := []model.Purchase{}
	err := sqlx.SelectContext(ctx, exec, &purchases, query, buyerUUID, string(purchaseType))
	if err != nil {
		return nil, util.LogError("[PurchaseRepo] не удалось получить историю покупок", err)
	}

	return purchases, nil
}

func (r *PurchaseRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}
