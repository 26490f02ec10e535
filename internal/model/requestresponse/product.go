package requestresponse

import (
	"media-shop-server/internal/model"
)

// CreateProductRequest : тело запроса на создание продукта
type CreateProductRequest struct {
	Title  string  `json:"title" example:"Карта губерний Российской империи"`
	Type   string  `json:"type" example:"historical_cartography"`
	Year   int     `json:"year" example:"1745"`
	Format string  `json:"format" example:"tiff"`
	Cost   float64 `json:"cost" example:"3.5"`
}

// ProductResponse : продукт каталога для JSON-ответа
type ProductResponse struct {
	ID     int64   `json:"id" example:"12"`
	Title  string  `json:"title" example:"Карта губерний Российской империи"`
	Type   string  `json:"type" example:"historical_cartography"`
	Year   int     `json:"year" example:"1745"`
	Format string  `json:"format" example:"tiff"`
	Cost   float64 `json:"cost" example:"3.5"`
}

// ProductResponseFromModel : конвертирует model.Product в ProductResponse
func ProductResponseFromModel(product *model.Product) ProductResponse {
	return ProductResponse{
		ID:     product.ID,
		Title:  product.Title,
		Type:   string(product.Type),
		Year:   product.Year,
		Format: string(product.Format),
		Cost:   product.Cost,
	}
}

// CreateProductResponse : ответ на создание продукта.
// UploadURL — pre-signed PUT URL для загрузки мастер-файла
type CreateProductResponse struct {
	Product   ProductResponse `json:"product"`
	UploadURL string          `json:"upload_url,omitempty" example:"https://storage.example.com/masters/..."`
}

// ListProductsResponse : ответ API со списком продуктов
type ListProductsResponse struct {
	Data  []ProductResponse `json:"data"`
	Count int               `json:"count" example:"10"`
}
