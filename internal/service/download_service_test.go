package service_test

import (
	"context"
	"errors"
	"media-shop-server/internal/apperror"
	"media-shop-server/internal/model"
	"media-shop-server/internal/service"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMediaTransformer struct{ mock.Mock }

func (m *MockMediaTransformer) Transform(ctx context.Context, masterPath string, originalFormat model.FormatType, requestedFormat model.FormatType) (*model.PreparedFile, error) {
	args := m.Called(ctx, masterPath, originalFormat, requestedFormat)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PreparedFile), args.Error(1)
}

type MockBundlePackager struct{ mock.Mock }

func (m *MockBundlePackager) Pack(ctx context.Context, items []*model.PreparedFile) (*model.PreparedFile, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PreparedFile), args.Error(1)
}

func newTestDownloadService(t *testing.T) (*service.DownloadService, *MockDownloadRepository, *MockPurchaseRepository, *MockProductRepository, *MockMediaTransformer, *MockBundlePackager) {
	mockDownloadRepo := new(MockDownloadRepository)
	mockPurchaseRepo := new(MockPurchaseRepository)
	mockProductRepo := new(MockProductRepository)
	mockTransformer := new(MockMediaTransformer)
	mockPackager := new(MockBundlePackager)

	svc := service.NewDownloadService(
		mockDownloadRepo,
		mockPurchaseRepo,
		mockProductRepo,
		mockTransformer,
		mockPackager,
		nil, // мастер-файлы читаются с локального диска
		t.TempDir(),
	)

	return svc, mockDownloadRepo, mockPurchaseRepo, mockProductRepo, mockTransformer, mockPackager
}

func writeTempFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
	return path
}

// ===== Тесты Fulfill =====

func TestFulfill_LinkNotFound(t *testing.T) {
	svc, mockDownloadRepo, _, _, _, _ := newTestDownloadService(t)
	ctx := testContext()

	mockDownloadRepo.On("GetAllByURL", ctx, mock.Anything, "missing").Return([]model.DownloadLink{}, nil)

	file, err := svc.Fulfill(ctx, "missing", "buyer", "")

	require.Error(t, err)
	assert.Nil(t, file)
	assert.True(t, apperror.IsNotFound(err))
}

func TestFulfill_Expired(t *testing.T) {
	svc, mockDownloadRepo, _, _, _, _ := newTestDownloadService(t)
	ctx := testContext()

	expired := time.Now().Add(-time.Hour)
	links := []model.DownloadLink{{ID: 1, PurchaseID: 1, DownloadURL: "url", ExpiresAt: &expired}}
	mockDownloadRepo.On("GetAllByURL", ctx, mock.Anything, "url").Return(links, nil)

	file, err := svc.Fulfill(ctx, "url", "buyer", "")

	require.Error(t, err)
	assert.Nil(t, file)
	assert.True(t, apperror.IsBadRequest(err))
}

func TestFulfill_Forbidden(t *testing.T) {
	svc, mockDownloadRepo, mockPurchaseRepo, mockProductRepo, _, _ := newTestDownloadService(t)
	ctx := testContext()

	links := []model.DownloadLink{{ID: 1, PurchaseID: 1, DownloadURL: "url"}}
	mockDownloadRepo.On("GetAllByURL", ctx, mock.Anything, "url").Return(links, nil)
	mockPurchaseRepo.On("GetByID", ctx, mock.Anything, int64(1)).
		Return(&model.Purchase{ID: 1, BuyerUUID: "someone-else", ProductID: 2}, nil)
	mockProductRepo.On("GetByID", ctx, mock.Anything, int64(2)).
		Return(&model.Product{ID: 2, Format: model.FormatJPG, Path: "/tmp/master.jpg"}, nil)

	file, err := svc.Fulfill(ctx, "url", "stranger", "")

	require.Error(t, err)
	assert.Nil(t, file)
	assert.True(t, apperror.IsForbidden(err))
}

func TestFulfill_AlreadyUsedByBuyer(t *testing.T) {
	svc, mockDownloadRepo, mockPurchaseRepo, mockProductRepo, _, _ := newTestDownloadService(t)
	ctx := testContext()

	links := []model.DownloadLink{{ID: 1, PurchaseID: 1, DownloadURL: "url", UsedBuyer: true}}
	mockDownloadRepo.On("GetAllByURL", ctx, mock.Anything, "url").Return(links, nil)
	mockPurchaseRepo.On("GetByID", ctx, mock.Anything, int64(1)).
		Return(&model.Purchase{ID: 1, BuyerUUID: "buyer", ProductID: 2}, nil)
	mockProductRepo.On("GetByID", ctx, mock.Anything, int64(2)).
		Return(&model.Product{ID: 2, Format: model.FormatJPG, Path: "/tmp/master.jpg"}, nil)

	file, err := svc.Fulfill(ctx, "url", "buyer", "")

	require.Error(t, err)
	assert.Nil(t, file)
	assert.True(t, apperror.IsBadRequest(err))
}

func TestFulfill_BuyerSingleFile(t *testing.T) {
	svc, mockDownloadRepo, mockPurchaseRepo, mockProductRepo, mockTransformer, _ := newTestDownloadService(t)
	ctx := testContext()

	links := []model.DownloadLink{{ID: 1, PurchaseID: 1, DownloadURL: "url"}}
	purchase := &model.Purchase{ID: 1, BuyerUUID: "buyer", ProductID: 2}
	product := &model.Product{ID: 2, Format: model.FormatJPG, Path: "/data/master.jpg"}

	mockDownloadRepo.On("GetAllByURL", ctx, mock.Anything, "url").Return(links, nil)
	mockPurchaseRepo.On("GetByID", ctx, mock.Anything, int64(1)).Return(purchase, nil)
	mockProductRepo.On("GetByID", ctx, mock.Anything, int64(2)).Return(product, nil)

	prepared := &model.PreparedFile{
		FilePath:    writeTempFile(t, "master-wm.png"),
		FileName:    "master-wm.png",
		ContentType: "image/png",
	}
	mockTransformer.On("Transform", ctx, "/data/master.jpg", model.FormatJPG, model.FormatPNG).Return(prepared, nil)

	rollback, commit := noopTxFuncs()
	mockDownloadRepo.On("BeginTX", ctx).Return(&fakeTx{}, rollback, commit, nil)
	mockDownloadRepo.On("SetUsedBuyerByURL", ctx, mock.Anything, "url").Return(nil)

	file, err := svc.Fulfill(ctx, "url", "buyer", "png")

	require.NoError(t, err)
	assert.Equal(t, prepared.FilePath, file.FilePath)
	assert.FileExists(t, file.FilePath)
	mockDownloadRepo.AssertExpectations(t)
}

func TestFulfill_RecipientMarksRecipientFlag(t *testing.T) {
	svc, mockDownloadRepo, mockPurchaseRepo, mockProductRepo, mockTransformer, _ := newTestDownloadService(t)
	ctx := testContext()

	used := false
	recipientUUID := "friend"
	links := []model.DownloadLink{{ID: 1, PurchaseID: 1, DownloadURL: "url", UsedRecipient: &used}}
	purchase := &model.Purchase{ID: 1, BuyerUUID: "buyer", ProductID: 2, Type: model.PurchaseGift, RecipientUUID: &recipientUUID}
	product := &model.Product{ID: 2, Format: model.FormatMP4, Path: "/data/master.mp4"}

	mockDownloadRepo.On("GetAllByURL", ctx, mock.Anything, "url").Return(links, nil)
	mockPurchaseRepo.On("GetByID", ctx, mock.Anything, int64(1)).Return(purchase, nil)
	mockProductRepo.On("GetByID", ctx, mock.Anything, int64(2)).Return(product, nil)

	prepared := &model.PreparedFile{
		FilePath:    writeTempFile(t, "master-wm.mp4"),
		FileName:    "master-wm.mp4",
		ContentType: "video/mp4",
	}
	mockTransformer.On("Transform", ctx, "/data/master.mp4", model.FormatMP4, model.FormatType("")).Return(prepared, nil)

	rollback, commit := noopTxFuncs()
	mockDownloadRepo.On("BeginTX", ctx).Return(&fakeTx{}, rollback, commit, nil)
	mockDownloadRepo.On("SetUsedRecipientByURL", ctx, mock.Anything, "url").Return(nil)

	file, err := svc.Fulfill(ctx, "url", "friend", "")

	require.NoError(t, err)
	assert.FileExists(t, file.FilePath)
	mockDownloadRepo.AssertExpectations(t)
}

func TestFulfill_UsageCommitFailureRemovesFile(t *testing.T) {
	svc, mockDownloadRepo, mockPurchaseRepo, mockProductRepo, mockTransformer, _ := newTestDownloadService(t)
	ctx := testContext()

	links := []model.DownloadLink{{ID: 1, PurchaseID: 1, DownloadURL: "url"}}
	purchase := &model.Purchase{ID: 1, BuyerUUID: "buyer", ProductID: 2}
	product := &model.Product{ID: 2, Format: model.FormatJPG, Path: "/data/master.jpg"}

	mockDownloadRepo.On("GetAllByURL", ctx, mock.Anything, "url").Return(links, nil)
	mockPurchaseRepo.On("GetByID", ctx, mock.Anything, int64(1)).Return(purchase, nil)
	mockProductRepo.On("GetByID", ctx, mock.Anything, int64(2)).Return(product, nil)

	prepared := &model.PreparedFile{
		FilePath:    writeTempFile(t, "master-wm.jpg"),
		FileName:    "master-wm.jpg",
		ContentType: "image/jpeg",
	}
	mockTransformer.On("Transform", ctx, "/data/master.jpg", model.FormatJPG, model.FormatType("")).Return(prepared, nil)

	rollback, _ := noopTxFuncs()
	mockDownloadRepo.On("BeginTX", ctx).Return(&fakeTx{}, rollback, func() error { return nil }, nil)
	mockDownloadRepo.On("SetUsedBuyerByURL", ctx, mock.Anything, "url").Return(errors.New("db down"))

	file, err := svc.Fulfill(ctx, "url", "buyer", "")

	require.Error(t, err)
	assert.Nil(t, file)
	// файл не должен пережить неудачный коммит использования
	assert.NoFileExists(t, prepared.FilePath)
}

func TestFulfill_BundleAppliesFormatPerImage(t *testing.T) {
	svc, mockDownloadRepo, mockPurchaseRepo, mockProductRepo, mockTransformer, mockPackager := newTestDownloadService(t)
	ctx := testContext()

	links := []model.DownloadLink{
		{ID: 1, PurchaseID: 1, DownloadURL: "url", IsBundle: true},
		{ID: 2, PurchaseID: 2, DownloadURL: "url", IsBundle: true},
	}
	mockDownloadRepo.On("GetAllByURL", ctx, mock.Anything, "url").Return(links, nil)
	mockPurchaseRepo.On("GetByID", ctx, mock.Anything, int64(1)).
		Return(&model.Purchase{ID: 1, BuyerUUID: "buyer", ProductID: 10}, nil)
	mockPurchaseRepo.On("GetByID", ctx, mock.Anything, int64(2)).
		Return(&model.Purchase{ID: 2, BuyerUUID: "buyer", ProductID: 20}, nil)
	mockProductRepo.On("GetByID", ctx, mock.Anything, int64(10)).
		Return(&model.Product{ID: 10, Format: model.FormatJPG, Path: "/data/a.jpg"}, nil)
	mockProductRepo.On("GetByID", ctx, mock.Anything, int64(20)).
		Return(&model.Product{ID: 20, Format: model.FormatMP4, Path: "/data/b.mp4"}, nil)

	imageFile := &model.PreparedFile{FilePath: writeTempFile(t, "a-wm.png"), FileName: "a-wm.png", ContentType: "image/png"}
	videoFile := &model.PreparedFile{FilePath: writeTempFile(t, "b-wm.mp4"), FileName: "b-wm.mp4", ContentType: "video/mp4"}
	// изображение конвертируется в выбранный формат, видео остается как есть
	mockTransformer.On("Transform", ctx, "/data/a.jpg", model.FormatJPG, model.FormatPNG).Return(imageFile, nil)
	mockTransformer.On("Transform", ctx, "/data/b.mp4", model.FormatMP4, model.FormatType("")).Return(videoFile, nil)

	zipFile := &model.PreparedFile{FilePath: writeTempFile(t, "bundle.zip"), FileName: "bundle.zip", ContentType: "application/zip"}
	mockPackager.On("Pack", ctx, []*model.PreparedFile{imageFile, videoFile}).Return(zipFile, nil)

	rollback, commit := noopTxFuncs()
	mockDownloadRepo.On("BeginTX", ctx).Return(&fakeTx{}, rollback, commit, nil)
	mockDownloadRepo.On("SetUsedBuyerByURL", ctx, mock.Anything, "url").Return(nil)

	file, err := svc.Fulfill(ctx, "url", "buyer", "png")

	require.NoError(t, err)
	assert.Equal(t, "bundle.zip", file.FileName)
	mockTransformer.AssertExpectations(t)
	mockPackager.AssertExpectations(t)
}

func TestFulfill_BundlePacksZip(t *testing.T) {
	svc, mockDownloadRepo, mockPurchaseRepo, mockProductRepo, mockTransformer, mockPackager := newTestDownloadService(t)
	ctx := testContext()

	links := []model.DownloadLink{
		{ID: 1, PurchaseID: 1, DownloadURL: "url", IsBundle: true},
		{ID: 2, PurchaseID: 2, DownloadURL: "url", IsBundle: true},
	}
	mockDownloadRepo.On("GetAllByURL", ctx, mock.Anything, "url").Return(links, nil)
	mockPurchaseRepo.On("GetByID", ctx, mock.Anything, int64(1)).
		Return(&model.Purchase{ID: 1, BuyerUUID: "buyer", ProductID: 10}, nil)
	mockPurchaseRepo.On("GetByID", ctx, mock.Anything, int64(2)).
		Return(&model.Purchase{ID: 2, BuyerUUID: "buyer", ProductID: 20}, nil)
	mockProductRepo.On("GetByID", ctx, mock.Anything, int64(10)).
		Return(&model.Product{ID: 10, Format: model.FormatJPG, Path: "/data/a.jpg"}, nil)
	mockProductRepo.On("GetByID", ctx, mock.Anything, int64(20)).
		Return(&model.Product{ID: 20, Format: model.FormatPNG, Path: "/data/b.png"}, nil)

	firstFile := &model.PreparedFile{FilePath: writeTempFile(t, "a-wm.jpg"), FileName: "a-wm.jpg", ContentType: "image/jpeg"}
	secondFile := &model.PreparedFile{FilePath: writeTempFile(t, "b-wm.png"), FileName: "b-wm.png", ContentType: "image/png"}
	mockTransformer.On("Transform", ctx, "/data/a.jpg", model.FormatJPG, model.FormatType("")).Return(firstFile, nil)
	mockTransformer.On("Transform", ctx, "/data/b.png", model.FormatPNG, model.FormatType("")).Return(secondFile, nil)

	zipFile := &model.PreparedFile{FilePath: writeTempFile(t, "bundle.zip"), FileName: "bundle.zip", ContentType: "application/zip"}
	mockPackager.On("Pack", ctx, []*model.PreparedFile{firstFile, secondFile}).Return(zipFile, nil)

	rollback, commit := noopTxFuncs()
	mockDownloadRepo.On("BeginTX", ctx).Return(&fakeTx{}, rollback, commit, nil)
	mockDownloadRepo.On("SetUsedBuyerByURL", ctx, mock.Anything, "url").Return(nil)

	file, err := svc.Fulfill(ctx, "url", "buyer", "")

	require.NoError(t, err)
	assert.Equal(t, "bundle.zip", file.FileName)
	assert.Equal(t, "application/zip", file.ContentType)
	mockPackager.AssertExpectations(t)
}

func TestFulfill_UnknownFormat(t *testing.T) {
	svc, mockDownloadRepo, _, _, _, _ := newTestDownloadService(t)
	ctx := testContext()

	links := []model.DownloadLink{{ID: 1, PurchaseID: 1, DownloadURL: "url"}}
	mockDownloadRepo.On("GetAllByURL", ctx, mock.Anything, "url").Return(links, nil)

	file, err := svc.Fulfill(ctx, "url", "buyer", "gif")

	require.Error(t, err)
	assert.Nil(t, file)
	assert.True(t, apperror.IsBadRequest(err))
}

// sqlx.ExtContext guard
var _ sqlx.ExtContext = (*fakeTx)(nil)
