package ports

import (
	"context"
	"github.com/jmoiron/sqlx"
	"media-shop-server/internal/model"
)

// DownloadRepository : SQL слой ссылок на загрузку.
// SetUsedBuyerByURL и SetUsedRecipientByURL помечают ВСЕ строки с данным URL
// одним UPDATE — флаги бандла меняются только вместе
type DownloadRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, link *model.DownloadLink) (*model.DownloadLink, error)
	GetAllByURL(ctx context.Context, exec sqlx.ExtContext, downloadURL string) ([]model.DownloadLink, error)
	ListByPurchase(ctx context.Context, exec sqlx.ExtContext, purchaseID int64) ([]model.DownloadLink, error)
	SetUsedBuyerByURL(ctx context.Context, exec sqlx.ExtContext, downloadURL string) error
	SetUsedRecipientByURL(ctx context.Context, exec sqlx.ExtContext, downloadURL string) error
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

type DownloadService interface {
	Fulfill(ctx context.Context, downloadURL string, requesterUUID string, requestedFormat string) (*model.PreparedFile, error)
	ListUserDownloads(ctx context.Context, userUUID string) ([]model.DownloadDetails, error)
}
