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
	"strings"
	"time"

	"github.com/google/uuid"
)

// PurchaseService : проверяет право на покупку, считает цену по типу
// и атомарно списывает токены, создавая покупки и ссылки на загрузку
type PurchaseService struct {
	purchaseRepository ports.PurchaseRepository
	productRepository  ports.ProductRepository
	downloadRepository ports.DownloadRepository
	userRepository     ports.UserRepository
	linkTTL            time.Duration
}

func NewPurchaseService(
	purchaseRepository ports.PurchaseRepository,
	productRepository ports.ProductRepository,
	downloadRepository ports.DownloadRepository,
	userRepository ports.UserRepository,
	linkTTL time.Duration,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepository: purchaseRepository,
		productRepository:  productRepository,
		downloadRepository: downloadRepository,
		userRepository:     userRepository,
		linkTTL:            linkTTL,
	}
}

type purchaseItem struct {
	product *model.Product
	variant model.PurchaseVariant
	cost    float64
}

// CreatePurchase : одна транзакция на весь запрос — списание токенов,
// по строке покупки и ссылки на каждый продукт; все ссылки мультипокупки
// делят один download_url
func (s *PurchaseService) CreatePurchase(ctx context.Context, buyerUUID string, productIDs []int64, recipientEmail string) (*model.PurchaseResult, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Internal("[PurchaseService] database connection не найден в context", nil)
	}

	if len(productIDs) == 0 {
		return nil, apperror.BadRequest("список продуктов пуст")
	}

	recipient, err := s.resolveRecipient(ctx, db, recipientEmail)
	if err != nil {
		return nil, err
	}

	items, totalCost, err := s.resolveItems(ctx, db, buyerUUID, productIDs, recipient)
	if err != nil {
		return nil, err
	}

	exec, rollback, commit, err := s.purchaseRepository.BeginTX(ctx)
	if err != nil {
		return nil, apperror.Internal("[PurchaseService] не удалось начать транзакцию", err)
	}
	defer rollback()

	// блокировка строки покупателя сериализует параллельные покупки
	balance, err := s.userRepository.GetBalanceForUpdate(ctx, exec, buyerUUID)
	if err != nil {
		return nil, apperror.Internal("[PurchaseService] не удалось прочитать баланс", err)
	}
	if balance < totalCost {
		return nil, apperror.BadRequest("недостаточно токенов для покупки")
	}

	isBundle := len(items) > 1
	var expiresAt *time.Time
	if s.linkTTL > 0 {
		t := time.Now().Add(s.linkTTL)
		expiresAt = &t
	}

	outcomes := make([]model.PurchaseOutcome, 0, len(items))
	// один непрозрачный токен на весь запрос: для набора все строки делят его
	downloadURL := uuid.NewString()

	for _, item := range items {
		purchase := &model.Purchase{
			BuyerUUID: buyerUUID,
			ProductID: item.product.ID,
			Type:      item.variant.Type,
		}
		if item.variant.Recipient != nil {
			purchase.RecipientUUID = &item.variant.Recipient.UUID
			purchase.RecipientEmail = &item.variant.Recipient.Email
		}

		created, err := s.purchaseRepository.Create(ctx, exec, purchase)
		if err != nil {
			return nil, apperror.Internal("[PurchaseService] не удалось сохранить покупку", err)
		}

		link := &model.DownloadLink{
			PurchaseID:  created.ID,
			DownloadURL: downloadURL,
			ExpiresAt:   expiresAt,
			IsBundle:    isBundle,
		}
		if created.IsGift() {
			used := false
			link.UsedRecipient = &used
		}

		if _, err := s.downloadRepository.Create(ctx, exec, link); err != nil {
			return nil, apperror.Internal("[PurchaseService] не удалось создать ссылку на загрузку", err)
		}

		outcomes = append(outcomes, model.PurchaseOutcome{
			PurchaseID: created.ID,
			ProductID:  item.product.ID,
			Type:       item.variant.Type,
			Cost:       item.cost,
		})
	}

	if err := s.userRepository.UpdateBalance(ctx, exec, buyerUUID, balance-totalCost); err != nil {
		return nil, apperror.Internal("[PurchaseService] не удалось списать токены", err)
	}

	if err := commit(); err != nil {
		return nil, apperror.Internal("[PurchaseService] не удалось закоммитить транзакцию", err)
	}

	log.Printf("[PurchaseService] покупатель %s приобрел %d продукт(ов) за %.1f токенов", buyerUUID, len(items), totalCost)

	return &model.PurchaseResult{
		Purchases:   outcomes,
		TotalCost:   totalCost,
		DownloadURL: downloadURL,
	}, nil
}

// resolveRecipient : получатель подарка обязан быть зарегистрирован
func (s *PurchaseService) resolveRecipient(ctx context.Context, db *config.Database, recipientEmail string) (*model.User, error) {
	email := strings.TrimSpace(recipientEmail)
	if email == "" {
		return nil, nil
	}

	recipient, err := s.userRepository.FindByEmail(ctx, db, email)
	if err != nil {
		return nil, apperror.Internal("[PurchaseService] ошибка поиска получателя", err)
	}
	if recipient == nil {
		return nil, apperror.BadRequest("получатель подарка должен быть зарегистрированным пользователем")
	}

	return recipient, nil
}

// resolveItems : вариант покупки для каждого продукта, в порядке правил:
// повторная покупка без получателя — ADDITIONAL_DOWNLOAD, указан
// получатель — GIFT, иначе STANDARD
func (s *PurchaseService) resolveItems(ctx context.Context, db *config.Database, buyerUUID string, productIDs []int64, recipient *model.User) ([]purchaseItem, float64, error) {
	items := make([]purchaseItem, 0, len(productIDs))
	var totalCost float64

	for _, productID := range productIDs {
		product, err := s.productRepository.GetByID(ctx, db, productID)
		if err != nil {
			return nil, 0, apperror.Internal("[PurchaseService] ошибка поиска продукта", err)
		}
		if product == nil {
			return nil, 0, apperror.BadRequest(fmt.Sprintf("продукт %d не существует", productID))
		}

		existing, err := s.purchaseRepository.FindByBuyerAndProduct(ctx, db, buyerUUID, productID)
		if err != nil {
			return nil, 0, apperror.Internal("[PurchaseService] ошибка проверки прошлых покупок", err)
		}

		var variant model.PurchaseVariant
		switch {
		case existing != nil && recipient == nil:
			variant = model.AdditionalDownloadVariant()
		case recipient != nil:
			variant = model.GiftVariant(recipient)
		default:
			variant = model.StandardVariant()
		}

		cost, err := variant.Cost(product)
		if err != nil {
			return nil, 0, apperror.Internal("[PurchaseService] ошибка расчета цены", err)
		}

		items = append(items, purchaseItem{product: product, variant: variant, cost: cost})
		totalCost += cost
	}

	return items, totalCost, nil
}

// GetDetailsByID : покупка вместе с продуктом, покупателем и получателем
func (s *PurchaseService) GetDetailsByID(ctx context.Context, id int64) (*model.PurchaseDetails, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Internal("[PurchaseService] database connection не найден в context", nil)
	}

	purchase, err := s.purchaseRepository.GetByID(ctx, db, id)
	if err != nil {
		return nil, apperror.NotFound("покупка не найдена")
	}

	return s.loadDetails(ctx, db, purchase)
}

// GetUserHistory : append-only история покупок пользователя
func (s *PurchaseService) GetUserHistory(ctx context.Context, buyerUUID string, purchaseType model.PurchaseType) ([]model.PurchaseDetails, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, apperror.Internal("[PurchaseService] database connection не найден в context", nil)
	}

	purchases, err := s.purchaseRepository.ListByBuyer(ctx, db, buyerUUID, purchaseType)
	if err != nil {
		return nil, apperror.Internal("[PurchaseService] не удалось получить историю", err)
	}

	details := make([]model.PurchaseDetails, 0, len(purchases))
	for i := range purchases {
		d, err := s.loadDetails(ctx, db, &purchases[i])
		if err != nil {
			_ = util.LogError("[PurchaseService] не удалось собрать детали покупки", err)
			continue
		}
		details = append(details, *d)
	}

	return details, nil
}

func (s *PurchaseService) loadDetails(ctx context.Context, db *config.Database, purchase *model.Purchase) (*model.PurchaseDetails, error) {
	product, err := s.productRepository.GetByID(ctx, db, purchase.ProductID)
	if err != nil {
		return nil, apperror.Internal("[PurchaseService] ошибка поиска продукта", err)
	}
	if product == nil {
		return nil, apperror.NotFound("продукт покупки не найден")
	}

	buyer, err := s.userRepository.FindByUUID(ctx, db, purchase.BuyerUUID)
	if err != nil {
		return nil, apperror.Internal("[PurchaseService] ошибка поиска покупателя", err)
	}

	details := &model.PurchaseDetails{
		Purchase: purchase,
		Product:  product,
		Buyer:    buyer,
	}

	if purchase.RecipientEmail != nil {
		recipient, err := s.userRepository.FindByEmail(ctx, db, *purchase.RecipientEmail)
		if err == nil && recipient != nil {
			details.Recipient = recipient
		}
	}

	return details, nil
}
