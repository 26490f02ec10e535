package ports

import (
	"context"
	"time"
)

// AssetStorage : S3 хранилище мастер-файлов
type AssetStorage interface {
	GeneratePresignedPutURL(ctx context.Context, key string, expire time.Duration) (string, error)
	DownloadToFile(ctx context.Context, key string, destPath string) error
	DeleteObject(ctx context.Context, key string) error
}
