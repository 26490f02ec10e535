package model

import (
	"fmt"
	"time"
)

// PurchaseType : тип покупки
type PurchaseType string

const (
	PurchaseStandard           PurchaseType = "standard"
	PurchaseGift               PurchaseType = "gift"
	PurchaseAdditionalDownload PurchaseType = "additional_download"
)

const (
	// GiftSurcharge : наценка за подарочную покупку, в токенах
	GiftSurcharge = 0.5
	// AdditionalDownloadCost : фиксированная цена повторной загрузки, в токенах
	AdditionalDownloadCost = 1.0
)

// Purchase : покупка, создается один раз и не изменяется
type Purchase struct {
	ID             int64        `db:"id_purchase" json:"id"`
	BuyerUUID      string       `db:"buyer_uuid" json:"buyer_uuid"`
	ProductID      int64        `db:"product_id" json:"product_id"`
	Type           PurchaseType `db:"type" json:"type"`
	RecipientUUID  *string      `db:"recipient_uuid" json:"recipient_uuid,omitempty"`
	RecipientEmail *string      `db:"recipient_email" json:"recipient_email,omitempty"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
}

func (p *Purchase) IsGift() bool {
	return p.Type == PurchaseGift
}

// PurchaseVariant : размеченный вариант покупки.
// Recipient заполнен только для подарка
type PurchaseVariant struct {
	Type      PurchaseType
	Recipient *User
}

func StandardVariant() PurchaseVariant {
	return PurchaseVariant{Type: PurchaseStandard}
}

func GiftVariant(recipient *User) PurchaseVariant {
	return PurchaseVariant{Type: PurchaseGift, Recipient: recipient}
}

func AdditionalDownloadVariant() PurchaseVariant {
	return PurchaseVariant{Type: PurchaseAdditionalDownload}
}

// Cost : цена покупки по правилу типа
func (v PurchaseVariant) Cost(product *Product) (float64, error) {
	switch v.Type {
	case PurchaseStandard:
		return product.Cost, nil
	case PurchaseGift:
		return product.Cost + GiftSurcharge, nil
	case PurchaseAdditionalDownload:
		return AdditionalDownloadCost, nil
	default:
		return 0, fmt.Errorf("неизвестный тип покупки: %s", v.Type)
	}
}

// PurchaseOutcome : итог по одному продукту в запросе покупки
type PurchaseOutcome struct {
	PurchaseID int64        `json:"purchase_id"`
	ProductID  int64        `json:"product_id"`
	Type       PurchaseType `json:"type"`
	Cost       float64      `json:"cost"`
}

// PurchaseResult : итог всей операции покупки
type PurchaseResult struct {
	Purchases   []PurchaseOutcome `json:"purchases"`
	TotalCost   float64           `json:"total_cost"`
	DownloadURL string            `json:"download_url"`
}

// PurchaseDetails : покупка вместе с продуктом и участниками
type PurchaseDetails struct {
	Purchase  *Purchase `json:"purchase"`
	Product   *Product  `json:"product"`
	Buyer     *User     `json:"buyer"`
	Recipient *User     `json:"recipient,omitempty"`
}
