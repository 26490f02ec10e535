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
	"path/filepath"
	"time"
)

// DownloadService : отдает покупателю или получателю подарка файл с водяным
// знаком по одноразовой ссылке; бандлы упаковывает в zip
type DownloadService struct {
	downloadRepository ports.DownloadRepository
	purchaseRepository ports.PurchaseRepository
	productRepository  ports.ProductRepository
	transformer        ports.MediaTransformer
	packager           ports.BundlePackager
	storage            ports.AssetStorage
	tmpDir             string
}

func NewDownloadService(
	downloadRepository ports.DownloadRepository,
	purchaseRepository ports.PurchaseRepository,
	productRepository ports.ProductRepository,
	transformer ports.MediaTransformer,
	packager ports.BundlePackager,
	storage ports.AssetStorage,
	tmpDir string,
) *DownloadService {
	return &DownloadService{
		downloadRepository: downloadRepository,
		purchaseRepository: purchaseRepository,
		productRepository:  productRepository,
		transformer:        transformer,
		packager:           packager,
		storage:            storage,
		tmpDir:             tmpDir,
	}
}

type fulfillmentItem struct {
	link     model.DownloadLink
	purchase *model.Purchase
	product  *model.Product
}

// Fulfill : проверяет ссылку, права и флаги использования, готовит файл(ы)
// и помечает ссылку использованной в одной транзакции.
// Файл не отдается, пока использование не закоммичено; удаление
// возвращенного файла — обязанность вызывающего
func (s *DownloadService) Fulfill(ctx context.Context, downloadURL string, requesterUUID string, requestedFormat string) (*model.PreparedFile, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Internal("[DownloadService] database connection не найден в context", nil)
	}

	links, err := s.downloadRepository.GetAllByURL(ctx, db, downloadURL)
	if err != nil {
		return nil, apperror.Internal("[DownloadService] ошибка поиска ссылки", err)
	}
	if len(links) == 0 {
		return nil, apperror.NotFound("ссылка на загрузку не найдена")
	}

	now := time.Now()
	for i := range links {
		if links[i].IsExpired(now) {
			return nil, apperror.BadRequest("срок действия ссылки истек")
		}
	}

	format, err := parseRequestedFormat(requestedFormat)
	if err != nil {
		return nil, err
	}

	items, err := s.loadItems(ctx, db, links)
	if err != nil {
		return nil, err
	}

	asRecipient, err := authorizeRequester(items, requesterUUID)
	if err != nil {
		return nil, err
	}

	if err := checkUsage(items, asRecipient); err != nil {
		return nil, err
	}

	deliverable, err := s.prepareDeliverable(ctx, items, format)
	if err != nil {
		return nil, err
	}

	// защита от осиротевшего файла: при любой ошибке коммита — удалить
	guard := util.NewTempArtifacts()
	guard.Add(deliverable.FilePath)

	if err := s.commitUsage(ctx, downloadURL, asRecipient); err != nil {
		guard.Cleanup()
		return nil, err
	}

	guard.Release()

	log.Printf("[DownloadService] ссылка %s использована (получатель подарка: %t, файлов: %d)", downloadURL, asRecipient, len(items))

	return deliverable, nil
}

func parseRequestedFormat(requestedFormat string) (model.FormatType, error) {
	if requestedFormat == "" {
		return "", nil
	}
	format := model.FormatType(requestedFormat)
	if !format.IsValid() {
		return "", apperror.BadRequest(fmt.Sprintf("неизвестный формат: %s", requestedFormat))
	}
	return format, nil
}

// loadItems : покупка и продукт для каждой строки ссылки
func (s *DownloadService) loadItems(ctx context.Context, db *config.Database, links []model.DownloadLink) ([]fulfillmentItem, error) {
	items := make([]fulfillmentItem, 0, len(links))

	for _, link := range links {
		purchase, err := s.purchaseRepository.GetByID(ctx, db, link.PurchaseID)
		if err != nil {
			return nil, apperror.Internal("[DownloadService] покупка ссылки не найдена", err)
		}

		product, err := s.productRepository.GetByID(ctx, db, purchase.ProductID)
		if err != nil {
			return nil, apperror.Internal("[DownloadService] ошибка поиска продукта", err)
		}
		if product == nil {
			return nil, apperror.NotFound("продукт покупки не найден")
		}

		items = append(items, fulfillmentItem{link: link, purchase: purchase, product: product})
	}

	return items, nil
}

// authorizeRequester : запрашивающий должен быть покупателем всех строк
// либо получателем подарка всех строк; вернет true для роли получателя
func authorizeRequester(items []fulfillmentItem, requesterUUID string) (bool, error) {
	isBuyer := true
	isRecipient := true

	for _, item := range items {
		if item.purchase.BuyerUUID != requesterUUID {
			isBuyer = false
		}
		if item.purchase.RecipientUUID == nil || *item.purchase.RecipientUUID != requesterUUID {
			isRecipient = false
		}
	}

	switch {
	case isBuyer:
		return false, nil
	case isRecipient:
		return true, nil
	default:
		return false, apperror.Forbidden("нет прав на загрузку по этой ссылке")
	}
}

// checkUsage : каждая роль может использовать ссылку один раз
func checkUsage(items []fulfillmentItem, asRecipient bool) error {
	for _, item := range items {
		if asRecipient {
			if item.link.UsedRecipient == nil {
				return apperror.Forbidden("нет прав на загрузку по этой ссылке")
			}
			if *item.link.UsedRecipient {
				return apperror.BadRequest("ссылка уже использована")
			}
			continue
		}
		if item.link.UsedBuyer {
			return apperror.BadRequest("ссылка уже использована")
		}
	}
	return nil
}

// prepareDeliverable : файл с водяным знаком для одной покупки,
// zip-архив — для набора. В наборе выбранный формат применяется к каждому
// изображению, для видео игнорируется
func (s *DownloadService) prepareDeliverable(ctx context.Context, items []fulfillmentItem, format model.FormatType) (*model.PreparedFile, error) {
	guard := util.NewTempArtifacts()

	prepared := make([]*model.PreparedFile, 0, len(items))
	for _, item := range items {
		itemFormat := format
		if len(items) > 1 && item.product.Format.IsVideo() {
			itemFormat = ""
		}

		file, err := s.transformItem(ctx, item, itemFormat)
		if err != nil {
			guard.Cleanup()
			return nil, err
		}
		guard.Add(file.FilePath)
		prepared = append(prepared, file)
	}

	if len(prepared) == 1 {
		guard.Release()
		return prepared[0], nil
	}

	// packager удаляет исходные файлы сам, guard остается на случай ошибки
	bundle, err := s.packager.Pack(ctx, prepared)
	if err != nil {
		guard.Cleanup()
		return nil, err
	}

	guard.Release()
	return bundle, nil
}

// transformItem : скачивает мастер-файл из хранилища (если оно настроено)
// и пропускает его через трансформер
func (s *DownloadService) transformItem(ctx context.Context, item fulfillmentItem, format model.FormatType) (*model.PreparedFile, error) {
	masterPath := item.product.Path

	if s.storage != nil {
		localPath := filepath.Join(s.tmpDir, fmt.Sprintf("master-%d-%d%s", item.product.ID, time.Now().UnixNano(), filepath.Ext(item.product.Path)))
		if err := s.storage.DownloadToFile(ctx, item.product.Path, localPath); err != nil {
			return nil, apperror.Internal("[DownloadService] не удалось скачать мастер-файл из хранилища", err)
		}
		defer func() {
			if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
				_ = util.LogError("[DownloadService] не удалось удалить копию мастер-файла", err)
			}
		}()
		masterPath = localPath
	}

	return s.transformer.Transform(ctx, masterPath, item.product.Format, format)
}

// commitUsage : помечает все строки ссылки использованными одним UPDATE
// в собственной транзакции
func (s *DownloadService) commitUsage(ctx context.Context, downloadURL string, asRecipient bool) error {
	exec, rollback, commit, err := s.downloadRepository.BeginTX(ctx)
	if err != nil {
		return apperror.Internal("[DownloadService] не удалось начать транзакцию", err)
	}
	defer rollback()

	if asRecipient {
		err = s.downloadRepository.SetUsedRecipientByURL(ctx, exec, downloadURL)
	} else {
		err = s.downloadRepository.SetUsedBuyerByURL(ctx, exec, downloadURL)
	}
	if err != nil {
		return apperror.Internal("[DownloadService] не удалось пометить ссылку использованной", err)
	}

	if err := commit(); err != nil {
		return apperror.Internal("[DownloadService] не удалось закоммитить использование", err)
	}

	return nil
}

// ListUserDownloads : все ссылки пользователя вместе с их покупками
func (s *DownloadService) ListUserDownloads(ctx context.Context, userUUID string) ([]model.DownloadDetails, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Internal("[DownloadService] database connection не найден в context", nil)
	}

	purchases, err := s.purchaseRepository.ListByBuyer(ctx, db, userUUID, "")
	if err != nil {
		return nil, apperror.Internal("[DownloadService] не удалось получить покупки", err)
	}

	details := make([]model.DownloadDetails, 0, len(purchases))
	for i := range purchases {
		links, err := s.downloadRepository.ListByPurchase(ctx, db, purchases[i].ID)
		if err != nil {
			_ = util.LogError("[DownloadService] не удалось получить ссылки покупки", err)
			continue
		}
		for j := range links {
			details = append(details, model.DownloadDetails{
				Download: &links[j],
				Purchase: &purchases[i],
			})
		}
	}

	return details, nil
}
