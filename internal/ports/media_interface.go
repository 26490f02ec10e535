package ports

import (
	"context"
	"media-shop-server/internal/model"
)

// MediaTransformer : наносит водяной знак и при необходимости меняет формат.
// requestedFormat == "" означает «оставить формат мастера».
// Возвращенный временный файл удаляет вызывающий
type MediaTransformer interface {
	Transform(ctx context.Context, masterPath string, originalFormat model.FormatType, requestedFormat model.FormatType) (*model.PreparedFile, error)
}

// BundlePackager : собирает несколько готовых файлов в один zip,
// удаляя каждый исходный файл после добавления в архив
type BundlePackager interface {
	Pack(ctx context.Context, items []*model.PreparedFile) (*model.PreparedFile, error)
}
