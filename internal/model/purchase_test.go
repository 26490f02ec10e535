package model_test

import (
	"media-shop-server/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseVariantCost(t *testing.T) {
	product := &model.Product{ID: 1, Cost: 3.5}

	tests := []struct {
		name     string
		variant  model.PurchaseVariant
		expected float64
	}{
		{"обычная покупка по цене продукта", model.StandardVariant(), 3.5},
		{"подарок с наценкой", model.GiftVariant(&model.User{UUID: "friend"}), 4.0},
		{"повторная загрузка по фиксированной цене", model.AdditionalDownloadVariant(), 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost, err := tt.variant.Cost(product)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cost)
		})
	}
}

func TestPurchaseVariantCost_UnknownType(t *testing.T) {
	variant := model.PurchaseVariant{Type: model.PurchaseType("subscription")}

	_, err := variant.Cost(&model.Product{Cost: 1})

	assert.Error(t, err)
}

func TestFormatType(t *testing.T) {
	assert.True(t, model.FormatJPG.IsImage())
	assert.True(t, model.FormatTIFF.IsImage())
	assert.False(t, model.FormatMP4.IsImage())
	assert.True(t, model.FormatMP4.IsVideo())
	assert.False(t, model.FormatType("gif").IsValid())
	assert.Equal(t, "image/tiff", model.FormatTIFF.MimeType())
	assert.Equal(t, "video/mp4", model.FormatMP4.MimeType())
}
