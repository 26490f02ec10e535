package service

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"media-shop-server/internal/apperror"
	"media-shop-server/internal/model"
	"media-shop-server/internal/util"
	"os"
	"path/filepath"
	"time"
)

// BundleService : собирает готовые файлы бандла в один zip-архив
type BundleService struct {
	tmpDir string
}

func NewBundleService(tmpDir string) *BundleService {
	return &BundleService{tmpDir: tmpDir}
}

// Pack : складывает каждый файл в архив и сразу удаляет его;
// при ошибке удаляются и архив, и оставшиеся файлы
func (s *BundleService) Pack(ctx context.Context, items []*model.PreparedFile) (*model.PreparedFile, error) {
	zipPath := filepath.Join(s.tmpDir, fmt.Sprintf("bundle-%d.zip", time.Now().UnixNano()))

	guard := util.NewTempArtifacts()
	guard.Add(zipPath)
	for _, item := range items {
		guard.Add(item.FilePath)
	}

	zipFile, err := os.Create(zipPath)
	if err != nil {
		guard.Cleanup()
		return nil, apperror.Internal("не удалось создать файл архива", err)
	}

	archive := zip.NewWriter(zipFile)

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			archive.Close()
			zipFile.Close()
			guard.Cleanup()
			return nil, apperror.Internal("сборка архива прервана", err)
		}

		if err := s.addToArchive(archive, item); err != nil {
			archive.Close()
			zipFile.Close()
			guard.Cleanup()
			return nil, err
		}

		// файл поглощен архивом
		if err := os.Remove(item.FilePath); err != nil && !os.IsNotExist(err) {
			_ = util.LogError("[BundleService] не удалось удалить временный файл после архивации", err)
		}
		guard.Forget(item.FilePath)
	}

	if err := archive.Close(); err != nil {
		zipFile.Close()
		guard.Cleanup()
		return nil, apperror.Internal("не удалось завершить архив", err)
	}
	if err := zipFile.Close(); err != nil {
		guard.Cleanup()
		return nil, apperror.Internal("не удалось записать архив", err)
	}

	guard.Release()

	return &model.PreparedFile{
		FilePath:    zipPath,
		FileName:    "bundle.zip",
		ContentType: "application/zip",
	}, nil
}

func (s *BundleService) addToArchive(archive *zip.Writer, item *model.PreparedFile) error {
	src, err := os.Open(item.FilePath)
	if err != nil {
		return apperror.Internal("не удалось открыть файл для архивации", err)
	}
	defer src.Close()

	dst, err := archive.Create(item.FileName)
	if err != nil {
		return apperror.Internal("не удалось добавить файл в архив", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		return apperror.Internal("не удалось записать файл в архив", err)
	}

	return nil
}
