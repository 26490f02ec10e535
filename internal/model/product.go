package model

// FormatType : формат мастер-файла продукта
type FormatType string

const (
	FormatJPG  FormatType = "jpg"
	FormatPNG  FormatType = "png"
	FormatTIFF FormatType = "tiff"
	FormatMP4  FormatType = "mp4"
)

func (f FormatType) IsImage() bool {
	return f == FormatJPG || f == FormatPNG || f == FormatTIFF
}

func (f FormatType) IsVideo() bool {
	return f == FormatMP4
}

func (f FormatType) IsValid() bool {
	return f.IsImage() || f.IsVideo()
}

// MimeType : возвращает MIME-тип для формата
func (f FormatType) MimeType() string {
	switch f {
	case FormatJPG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatTIFF:
		return "image/tiff"
	case FormatMP4:
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}

// ProductType : категория медиа-продукта
type ProductType string

const (
	ProductManuscript   ProductType = "manuscript"
	ProductCartography  ProductType = "historical_cartography"
	ProductPhotograph   ProductType = "photograph"
	ProductPainting     ProductType = "painting"
	ProductMap          ProductType = "map"
	ProductDocument     ProductType = "document"
	ProductNewspaper    ProductType = "newspaper"
	ProductBook         ProductType = "book"
	ProductVideoArchive ProductType = "historical_video"
)

// Product : продукт каталога, после создания не изменяется
type Product struct {
	ID     int64       `db:"id_product" json:"id"`
	Title  string      `db:"title" json:"title"`
	Type   ProductType `db:"type" json:"type"`
	Year   int         `db:"year" json:"year"`
	Format FormatType  `db:"format" json:"format"`
	Cost   float64     `db:"cost" json:"cost"`
	Path   string      `db:"path" json:"-"`
}

// ProductFilter : фильтры выборки каталога
type ProductFilter struct {
	Type   ProductType
	Year   int
	Format FormatType
}
