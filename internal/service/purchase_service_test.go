package service_test

import (
	"context"
	"database/sql"
	"errors"
	"media-shop-server/config"
	"media-shop-server/internal/apperror"
	"media-shop-server/internal/model"
	"media-shop-server/internal/service"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===== Моки репозиториев =====

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.Product, error) {
	args := m.Called(ctx, exec, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, exec sqlx.ExtContext, filter model.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, exec, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, exec sqlx.ExtContext, product *model.Product) (*model.Product, error) {
	args := m.Called(ctx, exec, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) (string, error) {
	args := m.Called(ctx, exec, id)
	return args.String(0), args.Error(1)
}

type MockPurchaseRepository struct{ mock.Mock }

func (m *MockPurchaseRepository) Create(ctx context.Context, exec sqlx.ExtContext, purchase *model.Purchase) (*model.Purchase, error) {
	args := m.Called(ctx, exec, purchase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.Purchase, error) {
	args := m.Called(ctx, exec, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindByBuyerAndProduct(ctx context.Context, exec sqlx.ExtContext, buyerUUID string, productID int64) (*model.Purchase, error) {
	args := m.Called(ctx, exec, buyerUUID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) ListByBuyer(ctx context.Context, exec sqlx.ExtContext, buyerUUID string, purchaseType model.PurchaseType) ([]model.Purchase, error) {
	args := m.Called(ctx, exec, buyerUUID, purchaseType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	args := m.Called(ctx)
	return args.Get(0).(sqlx.ExtContext), args.Get(1).(func() error), args.Get(2).(func() error), args.Error(3)
}

type MockDownloadRepository struct{ mock.Mock }

func (m *MockDownloadRepository) Create(ctx context.Context, exec sqlx.ExtContext, link *model.DownloadLink) (*model.DownloadLink, error) {
	args := m.Called(ctx, exec, link)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DownloadLink), args.Error(1)
}

func (m *MockDownloadRepository) GetAllByURL(ctx context.Context, exec sqlx.ExtContext, downloadURL string) ([]model.DownloadLink, error) {
	args := m.Called(ctx, exec, downloadURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DownloadLink), args.Error(1)
}

func (m *MockDownloadRepository) ListByPurchase(ctx context.Context, exec sqlx.ExtContext, purchaseID int64) ([]model.DownloadLink, error) {
	args := m.Called(ctx, exec, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DownloadLink), args.Error(1)
}

func (m *MockDownloadRepository) SetUsedBuyerByURL(ctx context.Context, exec sqlx.ExtContext, downloadURL string) error {
	return m.Called(ctx, exec, downloadURL).Error(0)
}

func (m *MockDownloadRepository) SetUsedRecipientByURL(ctx context.Context, exec sqlx.ExtContext, downloadURL string) error {
	return m.Called(ctx, exec, downloadURL).Error(0)
}

func (m *MockDownloadRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	args := m.Called(ctx)
	return args.Get(0).(sqlx.ExtContext), args.Get(1).(func() error), args.Get(2).(func() error), args.Error(3)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	args := m.Called(ctx, exec, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error) {
	args := m.Called(ctx, exec, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error) {
	args := m.Called(ctx, exec, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Exists(ctx context.Context, exec sqlx.ExtContext, uuid string) (bool, error) {
	args := m.Called(ctx, exec, uuid)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) GetBalance(ctx context.Context, exec sqlx.ExtContext, uuid string) (float64, error) {
	args := m.Called(ctx, exec, uuid)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockUserRepository) GetBalanceForUpdate(ctx context.Context, exec sqlx.ExtContext, uuid string) (float64, error) {
	args := m.Called(ctx, exec, uuid)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockUserRepository) UpdateBalance(ctx context.Context, exec sqlx.ExtContext, uuid string, newBalance float64) error {
	return m.Called(ctx, exec, uuid, newBalance).Error(0)
}

// ===== Фальшивая транзакция =====

type fakeTx struct{}

func (f *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (f *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (f *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return &sql.Row{}
}
func (f *fakeTx) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	return nil, nil
}
func (f *fakeTx) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	return &sqlx.Row{}
}
func (f *fakeTx) BindNamed(query string, arg interface{}) (string, []interface{}, error) {
	return "", nil, nil
}
func (f *fakeTx) DriverName() string         { return "fake" }
func (f *fakeTx) Rebind(query string) string { return query }

func noopTxFuncs() (func() error, func() error) {
	noop := func() error { return nil }
	return noop, noop
}

// ===== Функция для создания сервиса с моками =====

func newTestPurchaseService() (*service.PurchaseService, *MockPurchaseRepository, *MockProductRepository, *MockDownloadRepository, *MockUserRepository) {
	mockPurchaseRepo := new(MockPurchaseRepository)
	mockProductRepo := new(MockProductRepository)
	mockDownloadRepo := new(MockDownloadRepository)
	mockUserRepo := new(MockUserRepository)

	svc := service.NewPurchaseService(
		mockPurchaseRepo,
		mockProductRepo,
		mockDownloadRepo,
		mockUserRepo,
		0, // бессрочные ссылки
	)

	return svc, mockPurchaseRepo, mockProductRepo, mockDownloadRepo, mockUserRepo
}

func testContext() context.Context {
	return context.WithValue(context.Background(), "db", &config.Database{})
}

// ===== Тесты CreatePurchase =====

func TestCreatePurchase_Standard(t *testing.T) {
	svc, mockPurchaseRepo, mockProductRepo, mockDownloadRepo, mockUserRepo := newTestPurchaseService()
	ctx := testContext()

	product := &model.Product{ID: 1, Title: "Карта", Format: model.FormatTIFF, Cost: 3.5}

	mockProductRepo.On("GetByID", ctx, mock.Anything, int64(1)).Return(product, nil)
	mockPurchaseRepo.On("FindByBuyerAndProduct", ctx, mock.Anything, "buyer", int64(1)).Return(nil, nil)

	rollback, commit := noopTxFuncs()
	mockPurchaseRepo.On("BeginTX", ctx).Return(&fakeTx{}, rollback, commit, nil)
	mockUserRepo.On("GetBalanceForUpdate", ctx, mock.Anything, "buyer").Return(10.0, nil)

	created := &model.Purchase{ID: 41, BuyerUUID: "buyer", ProductID: 1, Type: model.PurchaseStandard}
	mockPurchaseRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(p *model.Purchase) bool {
		return p.Type == model.PurchaseStandard && p.RecipientEmail == nil
	})).Return(created, nil)

	// сервис чеканит непрозрачный токен ссылки до вставки
	mockDownloadRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(l *model.DownloadLink) bool {
		return l.PurchaseID == 41 && l.DownloadURL != ""
	})).Return(&model.DownloadLink{ID: 7, PurchaseID: 41}, nil)
	mockUserRepo.On("UpdateBalance", ctx, mock.Anything, "buyer", 6.5).Return(nil)

	result, err := svc.CreatePurchase(ctx, "buyer", []int64{1}, "")

	require.NoError(t, err)
	assert.Equal(t, 3.5, result.TotalCost)
	_, parseErr := uuid.Parse(result.DownloadURL)
	assert.NoError(t, parseErr)
	require.Len(t, result.Purchases, 1)
	assert.Equal(t, model.PurchaseStandard, result.Purchases[0].Type)
	mockPurchaseRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestCreatePurchase_GiftSurcharge(t *testing.T) {
	svc, mockPurchaseRepo, mockProductRepo, mockDownloadRepo, mockUserRepo := newTestPurchaseService()
	ctx := testContext()

	product := &model.Product{ID: 1, Format: model.FormatJPG, Cost: 2.0}
	recipient := &model.User{UUID: "friend-uuid", Email: "friend@example.com"}

	mockUserRepo.On("FindByEmail", ctx, mock.Anything, "friend@example.com").Return(recipient, nil)
	mockProductRepo.On("GetByID", ctx, mock.Anything, int64(1)).Return(product, nil)
	mockPurchaseRepo.On("FindByBuyerAndProduct", ctx, mock.Anything, "buyer", int64(1)).Return(nil, nil)

	rollback, commit := noopTxFuncs()
	mockPurchaseRepo.On("BeginTX", ctx).Return(&fakeTx{}, rollback, commit, nil)
	mockUserRepo.On("GetBalanceForUpdate", ctx, mock.Anything, "buyer").Return(10.0, nil)

	created := &model.Purchase{ID: 42, Type: model.PurchaseGift}
	mockPurchaseRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(p *model.Purchase) bool {
		return p.Type == model.PurchaseGift &&
			p.RecipientUUID != nil && *p.RecipientUUID == "friend-uuid" &&
			p.RecipientEmail != nil && *p.RecipientEmail == "friend@example.com"
	})).Return(created, nil)

	// для подарка used_recipient инициализируется значением false
	mockDownloadRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(l *model.DownloadLink) bool {
		return l.UsedRecipient != nil && *l.UsedRecipient == false
	})).Return(&model.DownloadLink{ID: 8, DownloadURL: "url-2"}, nil)

	mockUserRepo.On("UpdateBalance", ctx, mock.Anything, "buyer", 7.5).Return(nil)

	result, err := svc.CreatePurchase(ctx, "buyer", []int64{1}, "friend@example.com")

	require.NoError(t, err)
	assert.Equal(t, 2.5, result.TotalCost)
	mockDownloadRepo.AssertExpectations(t)
}

func TestCreatePurchase_GiftRecipientNotRegistered(t *testing.T) {
	svc, _, _, _, mockUserRepo := newTestPurchaseService()
	ctx := testContext()

	mockUserRepo.On("FindByEmail", ctx, mock.Anything, "nobody@example.com").Return(nil, nil)

	result, err := svc.CreatePurchase(ctx, "buyer", []int64{1}, "nobody@example.com")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperror.IsBadRequest(err))
}

func TestCreatePurchase_AdditionalDownloadFlatCost(t *testing.T) {
	svc, mockPurchaseRepo, mockProductRepo, mockDownloadRepo, mockUserRepo := newTestPurchaseService()
	ctx := testContext()

	product := &model.Product{ID: 1, Format: model.FormatMP4, Cost: 5.0}
	earlier := &model.Purchase{ID: 11, BuyerUUID: "buyer", ProductID: 1, Type: model.PurchaseStandard}

	mockProductRepo.On("GetByID", ctx, mock.Anything, int64(1)).Return(product, nil)
	mockPurchaseRepo.On("FindByBuyerAndProduct", ctx, mock.Anything, "buyer", int64(1)).Return(earlier, nil)

	rollback, commit := noopTxFuncs()
	mockPurchaseRepo.On("BeginTX", ctx).Return(&fakeTx{}, rollback, commit, nil)
	mockUserRepo.On("GetBalanceForUpdate", ctx, mock.Anything, "buyer").Return(2.0, nil)

	created := &model.Purchase{ID: 43, Type: model.PurchaseAdditionalDownload}
	mockPurchaseRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(p *model.Purchase) bool {
		return p.Type == model.PurchaseAdditionalDownload
	})).Return(created, nil)
	mockDownloadRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(&model.DownloadLink{ID: 9, DownloadURL: "url-3"}, nil)
	mockUserRepo.On("UpdateBalance", ctx, mock.Anything, "buyer", 1.0).Return(nil)

	result, err := svc.CreatePurchase(ctx, "buyer", []int64{1}, "")

	require.NoError(t, err)
	// повторная загрузка стоит фиксированно, а не по цене продукта
	assert.Equal(t, 1.0, result.TotalCost)
}

func TestCreatePurchase_InsufficientBalance(t *testing.T) {
	svc, mockPurchaseRepo, mockProductRepo, _, mockUserRepo := newTestPurchaseService()
	ctx := testContext()

	product := &model.Product{ID: 1, Format: model.FormatJPG, Cost: 5.0}
	mockProductRepo.On("GetByID", ctx, mock.Anything, int64(1)).Return(product, nil)
	mockPurchaseRepo.On("FindByBuyerAndProduct", ctx, mock.Anything, "buyer", int64(1)).Return(nil, nil)

	rollback, commit := noopTxFuncs()
	mockPurchaseRepo.On("BeginTX", ctx).Return(&fakeTx{}, rollback, commit, nil)
	mockUserRepo.On("GetBalanceForUpdate", ctx, mock.Anything, "buyer").Return(4.9, nil)

	result, err := svc.CreatePurchase(ctx, "buyer", []int64{1}, "")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperror.IsBadRequest(err))
}

func TestCreatePurchase_UnknownProduct(t *testing.T) {
	svc, _, mockProductRepo, _, _ := newTestPurchaseService()
	ctx := testContext()

	mockProductRepo.On("GetByID", ctx, mock.Anything, int64(99)).Return(nil, nil)

	result, err := svc.CreatePurchase(ctx, "buyer", []int64{99}, "")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperror.IsBadRequest(err))
}

func TestCreatePurchase_EmptyProductList(t *testing.T) {
	svc, _, _, _, _ := newTestPurchaseService()

	result, err := svc.CreatePurchase(testContext(), "buyer", nil, "")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperror.IsBadRequest(err))
}

func TestCreatePurchase_BundleSharesDownloadURL(t *testing.T) {
	svc, mockPurchaseRepo, mockProductRepo, mockDownloadRepo, mockUserRepo := newTestPurchaseService()
	ctx := testContext()

	first := &model.Product{ID: 1, Format: model.FormatJPG, Cost: 1.0}
	second := &model.Product{ID: 2, Format: model.FormatPNG, Cost: 2.0}

	mockProductRepo.On("GetByID", ctx, mock.Anything, int64(1)).Return(first, nil)
	mockProductRepo.On("GetByID", ctx, mock.Anything, int64(2)).Return(second, nil)
	mockPurchaseRepo.On("FindByBuyerAndProduct", ctx, mock.Anything, "buyer", mock.Anything).Return(nil, nil)

	rollback, commit := noopTxFuncs()
	mockPurchaseRepo.On("BeginTX", ctx).Return(&fakeTx{}, rollback, commit, nil)
	mockUserRepo.On("GetBalanceForUpdate", ctx, mock.Anything, "buyer").Return(10.0, nil)

	mockPurchaseRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(p *model.Purchase) bool { return p.ProductID == 1 })).
		Return(&model.Purchase{ID: 51, ProductID: 1, Type: model.PurchaseStandard}, nil)
	mockPurchaseRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(p *model.Purchase) bool { return p.ProductID == 2 })).
		Return(&model.Purchase{ID: 52, ProductID: 2, Type: model.PurchaseStandard}, nil)

	// обе строки создаются как части набора и делят один URL
	var firstURL, secondURL string
	mockDownloadRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(l *model.DownloadLink) bool {
		return l.PurchaseID == 51 && l.IsBundle
	})).Run(func(args mock.Arguments) {
		firstURL = args.Get(2).(*model.DownloadLink).DownloadURL
	}).Return(&model.DownloadLink{ID: 61, PurchaseID: 51, IsBundle: true}, nil)
	mockDownloadRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(l *model.DownloadLink) bool {
		return l.PurchaseID == 52 && l.IsBundle
	})).Run(func(args mock.Arguments) {
		secondURL = args.Get(2).(*model.DownloadLink).DownloadURL
	}).Return(&model.DownloadLink{ID: 62, PurchaseID: 52, IsBundle: true}, nil)

	mockUserRepo.On("UpdateBalance", ctx, mock.Anything, "buyer", 7.0).Return(nil)

	result, err := svc.CreatePurchase(ctx, "buyer", []int64{1, 2}, "")

	require.NoError(t, err)
	assert.NotEmpty(t, result.DownloadURL)
	assert.Equal(t, result.DownloadURL, firstURL)
	assert.Equal(t, result.DownloadURL, secondURL)
	assert.Equal(t, 3.0, result.TotalCost)
	mockDownloadRepo.AssertExpectations(t)
}

func TestCreatePurchase_CommitError(t *testing.T) {
	svc, mockPurchaseRepo, mockProductRepo, mockDownloadRepo, mockUserRepo := newTestPurchaseService()
	ctx := testContext()

	product := &model.Product{ID: 1, Format: model.FormatJPG, Cost: 1.0}
	mockProductRepo.On("GetByID", ctx, mock.Anything, int64(1)).Return(product, nil)
	mockPurchaseRepo.On("FindByBuyerAndProduct", ctx, mock.Anything, "buyer", int64(1)).Return(nil, nil)

	rollback := func() error { return nil }
	commit := func() error { return errors.New("deadlock") }
	mockPurchaseRepo.On("BeginTX", ctx).Return(&fakeTx{}, rollback, commit, nil)
	mockUserRepo.On("GetBalanceForUpdate", ctx, mock.Anything, "buyer").Return(10.0, nil)
	mockPurchaseRepo.On("Create", ctx, mock.Anything, mock.Anything).
		Return(&model.Purchase{ID: 41, Type: model.PurchaseStandard}, nil)
	mockDownloadRepo.On("Create", ctx, mock.Anything, mock.Anything).
		Return(&model.DownloadLink{ID: 7, DownloadURL: "url"}, nil)
	mockUserRepo.On("UpdateBalance", ctx, mock.Anything, "buyer", 9.0).Return(nil)

	result, err := svc.CreatePurchase(ctx, "buyer", []int64{1}, "")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.False(t, apperror.IsBadRequest(err))
}

// ===== Тесты GetDetailsByID =====

func TestGetDetailsByID(t *testing.T) {
	svc, mockPurchaseRepo, mockProductRepo, _, mockUserRepo := newTestPurchaseService()
	ctx := testContext()

	email := "friend@example.com"
	purchase := &model.Purchase{ID: 41, BuyerUUID: "buyer", ProductID: 5, Type: model.PurchaseGift, RecipientEmail: &email}
	mockPurchaseRepo.On("GetByID", ctx, mock.Anything, int64(41)).Return(purchase, nil)
	mockProductRepo.On("GetByID", ctx, mock.Anything, int64(5)).Return(&model.Product{ID: 5, Title: "Карта"}, nil)
	mockUserRepo.On("FindByUUID", ctx, mock.Anything, "buyer").Return(&model.User{UUID: "buyer"}, nil)
	mockUserRepo.On("FindByEmail", ctx, mock.Anything, email).Return(&model.User{UUID: "friend", Email: email}, nil)

	details, err := svc.GetDetailsByID(ctx, 41)

	require.NoError(t, err)
	assert.Equal(t, int64(41), details.Purchase.ID)
	assert.Equal(t, "Карта", details.Product.Title)
	require.NotNil(t, details.Recipient)
	assert.Equal(t, "friend", details.Recipient.UUID)
}

func TestGetDetailsByID_NotFound(t *testing.T) {
	svc, mockPurchaseRepo, _, _, _ := newTestPurchaseService()
	ctx := testContext()

	mockPurchaseRepo.On("GetByID", ctx, mock.Anything, int64(99)).Return(nil, errors.New("sql: no rows in result set"))

	details, err := svc.GetDetailsByID(ctx, 99)

	require.Error(t, err)
	assert.Nil(t, details)
	assert.True(t, apperror.IsNotFound(err))
}

// ===== Тесты GetUserHistory =====

func TestGetUserHistory_FilterPassedThrough(t *testing.T) {
	svc, mockPurchaseRepo, mockProductRepo, _, mockUserRepo := newTestPurchaseService()
	ctx := testContext()

	purchases := []model.Purchase{
		{ID: 1, BuyerUUID: "buyer", ProductID: 5, Type: model.PurchaseGift, CreatedAt: time.Now()},
	}
	mockPurchaseRepo.On("ListByBuyer", ctx, mock.Anything, "buyer", model.PurchaseGift).Return(purchases, nil)
	mockProductRepo.On("GetByID", ctx, mock.Anything, int64(5)).Return(&model.Product{ID: 5}, nil)
	mockUserRepo.On("FindByUUID", ctx, mock.Anything, "buyer").Return(&model.User{UUID: "buyer"}, nil)

	details, err := svc.GetUserHistory(ctx, "buyer", model.PurchaseGift)

	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, model.PurchaseGift, details[0].Purchase.Type)
}
