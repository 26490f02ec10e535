package repository

import (
	"context"
	"fmt"
	"github.com/jmoiron/sqlx"
	"media-shop-server/config"
	"media-shop-server/internal/model"
	"media-shop-server/internal/util"
)

type DownloadRepository struct {
	*config.Database
}

func NewDownloadRepository(database *config.Database) *DownloadRepository {
	return &DownloadRepository{database}
}

// Create : сохраняет новую ссылку с download_url, выданным сервисом
func (r *DownloadRepository) Create(ctx context.Context, exec sqlx.ExtContext, link *model.DownloadLink) (*model.DownloadLink, error) {
	query := `
		INSERT INTO downloads (purchase_id, download_url, used_recipient, expires_at, is_bundle)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id_download, purchase_id, download_url, used_buyer, used_recipient, expires_at, is_bundle, created_at
	`

	created := &model.DownloadLink{}
	err := exec.QueryRowxContext(ctx, query,
		link.PurchaseID,
		link.DownloadURL,
		link.UsedRecipient,
		link.ExpiresAt,
		link.IsBundle,
	).StructScan(created)

	if err != nil {
		return nil, util.LogError("[DownloadRepo] ошибка вставки данных в БД", err)
	}

	return created, nil
}

// GetAllByURL : все строки ссылки; одна для обычной покупки, N для бандла
func (r *DownloadRepository) GetAllByURL(ctx context.Context, exec sqlx.ExtContext, downloadURL string) ([]model.DownloadLink, error) {
	query := `
		SELECT id_download, purchase_id, download_url, used_buyer, used_recipient, expires_at, is_bundle, created_at
		FROM downloads
		WHERE download_url = $1
		ORDER BY id_download
	`

	links := []model.DownloadLink{}
	err := sqlx.SelectContext(ctx, exec, &links, query, downloadURL)
	if err != nil {
		return nil, util.LogError("[DownloadRepo] не удалось получить ссылки по URL", err)
	}

	return links, nil
}

// ListByPurchase : все ссылки одной покупки
func (r *DownloadRepository) ListByPurchase(ctx context.Context, exec sqlx.ExtContext, purchaseID int64) ([]model.DownloadLink, error) {
	query := `
		SELECT id_download, purchase_id, download_url, used_buyer, used_recipient, expires_at, is_bundle, created_at
		FROM downloads
		WHERE purchase_id = $1
		ORDER BY id_download
	`

	links := []model.DownloadLink{}
	err := sqlx.SelectContext(ctx, exec, &links, query, purchaseID)
	if err != nil {
		return nil, util.LogError("[DownloadRepo] не удалось получить ссылки покупки", err)
	}

	return links, nil
}

// SetUsedBuyerByURL : помечает использование покупателем на всех строках URL разом
func (r *DownloadRepository) SetUsedBuyerByURL(ctx context.Context, exec sqlx.ExtContext, downloadURL string) error {
	return r.setUsedByURL(ctx, exec, downloadURL, "used_buyer")
}

// SetUsedRecipientByURL : помечает использование получателем на всех строках URL разом
func (r *DownloadRepository) SetUsedRecipientByURL(ctx context.Context, exec sqlx.ExtContext, downloadURL string) error {
	return r.setUsedByURL(ctx, exec, downloadURL, "used_recipient")
}

// setUsedByURL : условие на снятый флаг не дает двум параллельным запросам
// использовать одну ссылку дважды
func (r *DownloadRepository) setUsedByURL(ctx context.Context, exec sqlx.ExtContext, downloadURL string, column string) error {
	query := fmt.Sprintf(`UPDATE downloads SET %s = TRUE WHERE download_url = $1 AND %s = FALSE`, column, column)

	result, err := exec.ExecContext(ctx, query, downloadURL)
	if err != nil {
		return util.LogError("[DownloadRepo] не удалось пометить использование ссылки", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[DownloadRepo] не удалось проверить обновление ссылки", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("[DownloadRepo] ссылка %s не найдена или уже использована", downloadURL)
	}

	return nil
}

func (r *DownloadRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}
