package ports

import (
	"context"
	"github.com/jmoiron/sqlx"
	"media-shop-server/internal/model"
)

// PurchaseRepository : SQL слой покупок.
// FindByBuyerAndProduct возвращает (nil, nil), если покупки не было
type PurchaseRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, purchase *model.Purchase) (*model.Purchase, error)
	GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.Purchase, error)
	FindByBuyerAndProduct(ctx context.Context, exec sqlx.ExtContext, buyerUUID string, productID int64) (*model.Purchase, error)
	ListByBuyer(ctx context.Context, exec sqlx.ExtContext, buyerUUID string, purchaseType model.PurchaseType) ([]model.Purchase, error)
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

type PurchaseService interface {
	CreatePurchase(ctx context.Context, buyerUUID string, productIDs []int64, recipientEmail string) (*model.PurchaseResult, error)
	GetDetailsByID(ctx context.Context, id int64) (*model.PurchaseDetails, error)
	GetUserHistory(ctx context.Context, buyerUUID string, purchaseType model.PurchaseType) ([]model.PurchaseDetails, error)
}
