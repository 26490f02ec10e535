package service

import (
	"context"
	"fmt"
	"log"
	"media-shop-server/config"
	"media-shop-server/internal/apperror"
	"media-shop-server/internal/model"
	"media-shop-server/internal/ports"
	"media-shop-server/internal/util"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProductService : каталог продуктов с кэшем в Redis.
// Мастер-файл заливается администратором по pre-signed PUT URL
type ProductService struct {
	productRepository ports.ProductRepository
	cacheRepository   ports.ProductCacheRepository
	storage           ports.AssetStorage
	presignTTL        time.Duration
}

func NewProductService(
	productRepository ports.ProductRepository,
	cacheRepository ports.ProductCacheRepository,
	storage ports.AssetStorage,
	presignTTL time.Duration,
) *ProductService {
	return &ProductService{
		productRepository: productRepository,
		cacheRepository:   cacheRepository,
		storage:           storage,
		presignTTL:        presignTTL,
	}
}

// GetProduct : сначала кэш, затем БД; найденное в БД кладется в кэш
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Internal("[ProductService] database connection не найден в context", nil)
	}

	if s.cacheRepository != nil {
		cached, err := s.cacheRepository.GetProduct(ctx, id)
		if err != nil {
			_ = util.LogError("[ProductService] ошибка чтения кэша", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	product, err := s.productRepository.GetByID(ctx, db, id)
	if err != nil {
		return nil, apperror.Internal("[ProductService] ошибка поиска продукта", err)
	}
	if product == nil {
		return nil, apperror.NotFound("продукт не найден")
	}

	if s.cacheRepository != nil {
		if err := s.cacheRepository.SetProduct(ctx, product); err != nil {
			_ = util.LogError("[ProductService] ошибка записи в кэш", err)
		}
	}

	return product, nil
}

// ListProducts : выборка каталога по фильтрам
func (s *ProductService) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Internal("[ProductService] database connection не найден в context", nil)
	}

	products, err := s.productRepository.List(ctx, db, filter)
	if err != nil {
		return nil, apperror.Internal("[ProductService] ошибка выборки каталога", err)
	}

	return products, nil
}

// CreateProduct : сохраняет продукт и возвращает pre-signed PUT URL
// для загрузки мастер-файла под сгенерированным ключом
func (s *ProductService) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, string, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, "", apperror.Internal("[ProductService] database connection не найден в context", nil)
	}

	if err := validateProduct(product); err != nil {
		return nil, "", err
	}

	if product.Path == "" {
		product.Path = fmt.Sprintf("masters/%s.%s", uuid.New().String(), product.Format)
	}

	created, err := s.productRepository.Create(ctx, db, product)
	if err != nil {
		return nil, "", apperror.Internal("[ProductService] не удалось сохранить продукт", err)
	}

	var uploadURL string
	if s.storage != nil {
		uploadURL, err = s.storage.GeneratePresignedPutURL(ctx, created.Path, s.presignTTL)
		if err != nil {
			return nil, "", apperror.Internal("[ProductService] не удалось сгенерировать URL загрузки", err)
		}
	}

	if s.cacheRepository != nil {
		if err := s.cacheRepository.SetProduct(ctx, created); err != nil {
			_ = util.LogError("[ProductService] ошибка записи в кэш", err)
		}
	}

	log.Printf("[ProductService] создан продукт %d (%s)", created.ID, created.Title)

	return created, uploadURL, nil
}

// DeleteProduct : удаляет строку каталога, мастер-файл и запись кэша
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return apperror.Internal("[ProductService] database connection не найден в context", nil)
	}

	path, err := s.productRepository.Delete(ctx, db, id)
	if err != nil {
		return apperror.NotFound("продукт не найден")
	}

	if s.storage != nil {
		if err := s.storage.DeleteObject(ctx, path); err != nil {
			_ = util.LogError("[ProductService] не удалось удалить мастер-файл из хранилища", err)
		}
	} else if path != "" {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			_ = util.LogError("[ProductService] не удалось удалить локальный мастер-файл", err)
		}
	}

	if s.cacheRepository != nil {
		if err := s.cacheRepository.DeleteProduct(ctx, id); err != nil {
			_ = util.LogError("[ProductService] ошибка удаления из кэша", err)
		}
	}

	return nil
}

func validateProduct(product *model.Product) error {
	if strings.TrimSpace(product.Title) == "" {
		return apperror.BadRequest("название продукта обязательно")
	}
	if !product.Format.IsValid() {
		return apperror.BadRequest(fmt.Sprintf("неизвестный формат: %s", product.Format))
	}
	if product.Cost < 0 {
		return apperror.BadRequest("цена продукта не может быть отрицательной")
	}
	return nil
}
