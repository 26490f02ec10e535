package model

import "time"

// DownloadLink : ссылка на загрузку, единица контроля доступа.
// Бандл хранится как несколько строк с общим DownloadURL, по одной на покупку.
// UsedRecipient заполнен только когда покупка — подарок
type DownloadLink struct {
	ID            int64      `db:"id_download" json:"id"`
	PurchaseID    int64      `db:"purchase_id" json:"purchase_id"`
	DownloadURL   string     `db:"download_url" json:"download_url"`
	UsedBuyer     bool       `db:"used_buyer" json:"used_buyer"`
	UsedRecipient *bool      `db:"used_recipient" json:"used_recipient,omitempty"`
	ExpiresAt     *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	IsBundle      bool       `db:"is_bundle" json:"is_bundle"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// IsExpired : true, если срок действия ссылки истек
func (d *DownloadLink) IsExpired(now time.Time) bool {
	return d.ExpiresAt != nil && now.After(*d.ExpiresAt)
}

// PreparedFile : готовый к отдаче файл; удаление пути — обязанность вызывающего
type PreparedFile struct {
	FilePath    string `json:"-"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

// DownloadDetails : ссылка вместе с ее покупкой
type DownloadDetails struct {
	Download *DownloadLink `json:"download"`
	Purchase *Purchase     `json:"purchase"`
}
