package requestresponse

import (
	"media-shop-server/internal/model"
	"time"
)

// CreatePurchaseRequest : тело запроса на покупку.
// RecipientEmail заполняется только для подарка
type CreatePurchaseRequest struct {
	ProductIDs     []int64 `json:"product_ids" example:"1,2,3"`
	RecipientEmail string  `json:"recipient_email,omitempty" example:"friend@example.com"`
}

// PurchaseOutcomeResponse : итог по одному продукту
type PurchaseOutcomeResponse struct {
	PurchaseID int64   `json:"purchase_id" example:"41"`
	ProductID  int64   `json:"product_id" example:"12"`
	Type       string  `json:"type" example:"standard"`
	Cost       float64 `json:"cost" example:"3.5"`
}

// CreatePurchaseResponse : ответ на успешную покупку
type CreatePurchaseResponse struct {
	Purchases   []PurchaseOutcomeResponse `json:"purchases"`
	TotalCost   float64                   `json:"total_cost" example:"7.0"`
	DownloadURL string                    `json:"download_url" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
}

// CreatePurchaseResponseFromModel : конвертирует model.PurchaseResult
func CreatePurchaseResponseFromModel(result *model.PurchaseResult) CreatePurchaseResponse {
	outcomes := make([]PurchaseOutcomeResponse, 0, len(result.Purchases))
	for _, p := range result.Purchases {
		outcomes = append(outcomes, PurchaseOutcomeResponse{
			PurchaseID: p.PurchaseID,
			ProductID:  p.ProductID,
			Type:       string(p.Type),
			Cost:       p.Cost,
		})
	}
	return CreatePurchaseResponse{
		Purchases:   outcomes,
		TotalCost:   result.TotalCost,
		DownloadURL: result.DownloadURL,
	}
}

// PurchaseDetailsResponse : покупка вместе с продуктом
type PurchaseDetailsResponse struct {
	ID             int64           `json:"id" example:"41"`
	Type           string          `json:"type" example:"gift"`
	RecipientEmail string          `json:"recipient_email,omitempty" example:"friend@example.com"`
	CreatedAt      string          `json:"created_at" example:"2025-08-23T12:34:56Z"`
	Product        ProductResponse `json:"product"`
}

// PurchaseDetailsResponseFromModel : конвертирует model.PurchaseDetails
func PurchaseDetailsResponseFromModel(details *model.PurchaseDetails) PurchaseDetailsResponse {
	resp := PurchaseDetailsResponse{
		ID:        details.Purchase.ID,
		Type:      string(details.Purchase.Type),
		CreatedAt: details.Purchase.CreatedAt.Format(time.RFC3339),
		Product:   ProductResponseFromModel(details.Product),
	}
	if details.Purchase.RecipientEmail != nil {
		resp.RecipientEmail = *details.Purchase.RecipientEmail
	}
	return resp
}

// PurchaseHistoryResponse : история покупок пользователя
type PurchaseHistoryResponse struct {
	Data  []PurchaseDetailsResponse `json:"data"`
	Count int                       `json:"count" example:"3"`
}
