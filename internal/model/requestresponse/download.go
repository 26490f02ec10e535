package requestresponse

import (
	"media-shop-server/internal/model"
	"time"
)

// DownloadLinkResponse : ссылка на загрузку для JSON-ответа
type DownloadLinkResponse struct {
	DownloadURL   string `json:"download_url" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
	PurchaseID    int64  `json:"purchase_id" example:"41"`
	UsedBuyer     bool   `json:"used_buyer" example:"false"`
	UsedRecipient *bool  `json:"used_recipient,omitempty" example:"false"`
	IsBundle      bool   `json:"is_bundle" example:"true"`
	ExpiresAt     string `json:"expires_at,omitempty" example:"2025-08-30T12:34:56Z"`
}

// DownloadLinkResponseFromModel : конвертирует model.DownloadLink
func DownloadLinkResponseFromModel(link *model.DownloadLink) DownloadLinkResponse {
	resp := DownloadLinkResponse{
		DownloadURL:   link.DownloadURL,
		PurchaseID:    link.PurchaseID,
		UsedBuyer:     link.UsedBuyer,
		UsedRecipient: link.UsedRecipient,
		IsBundle:      link.IsBundle,
	}
	if link.ExpiresAt != nil {
		resp.ExpiresAt = link.ExpiresAt.Format(time.RFC3339)
	}
	return resp
}

// ListDownloadsResponse : ответ API со списком ссылок пользователя
type ListDownloadsResponse struct {
	Data  []DownloadLinkResponse `json:"data"`
	Count int                    `json:"count" example:"2"`
}
