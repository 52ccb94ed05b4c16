package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, f)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

// fn をそのまま呼ぶだけのTx（commit/rollback はDB側のテストで見る）
type fakeTx struct {
	catalog *CatalogRepoMock
	audit   *AuditRepoMock
	calls   int
}

func (f *fakeTx) Catalog() repo.CatalogRepository     { return f.catalog }
func (f *fakeTx) AuditLogs() repo.AuditLogRepository { return f.audit }

func (f *fakeTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	f.calls++
	return fn(f)
}

func newAdminFixture() (*usecase.AdminCatalogUsecase, *fakeTx) {
	tx := &fakeTx{catalog: new(CatalogRepoMock), audit: new(AuditRepoMock)}
	return usecase.NewAdminCatalogUsecase(tx, tx.audit), tx
}

func TestAdminCatalogUsecase_CreateProduct_Validation(t *testing.T) {
	u, tx := newAdminFixture()
	ctx := context.Background()

	_, err := u.AdminCreateProduct(ctx, "rid", usecase.AdminCreateProductInput{Name: " ", Price: decimal.NewFromInt(1)})
	assertHTTPError(t, err, http.StatusBadRequest)
	_, err = u.AdminCreateProduct(ctx, "rid", usecase.AdminCreateProductInput{Name: "a", Price: decimal.NewFromInt(-1)})
	assertHTTPError(t, err, http.StatusBadRequest)
	_, err = u.AdminCreateProduct(ctx, "rid", usecase.AdminCreateProductInput{Name: "a", Price: decimal.NewFromInt(1), Stock: -1})
	assertHTTPError(t, err, http.StatusBadRequest)

	assert.Equal(t, 0, tx.calls)
}

func TestAdminCatalogUsecase_CreateProduct_WritesAudit(t *testing.T) {
	u, tx := newAdminFixture()

	tx.catalog.On("Create", mock.Anything, mock.MatchedBy(func(p model.CatalogProduct) bool {
		return p.Name == "Tênis" && p.Stock == 3 && p.IsActive && p.ImageURL == "https://img"
	})).Return(model.CatalogProduct{ID: 11, Name: "Tênis", Stock: 3}, nil)
	tx.audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionCreateProduct && l.ResourceID == 11 && l.RequestID == "rid-1" && l.AfterJSON != ""
	})).Return(nil)

	id, err := u.AdminCreateProduct(context.Background(), "rid-1", usecase.AdminCreateProductInput{
		Name:     " Tênis ",
		Price:    decimal.RequireFromString("10.5"),
		ImageURL: " https://img ",
		Stock:    3,
		IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	tx.catalog.AssertExpectations(t)
	tx.audit.AssertExpectations(t)
}

func TestAdminCatalogUsecase_CreateProduct_AuditFailureFails(t *testing.T) {
	u, tx := newAdminFixture()
	tx.catalog.On("Create", mock.Anything, mock.Anything).Return(model.CatalogProduct{ID: 1}, nil)
	tx.audit.On("Create", mock.Anything, mock.Anything).Return(errors.New("down"))

	_, err := u.AdminCreateProduct(context.Background(), "rid", usecase.AdminCreateProductInput{Name: "a", Price: decimal.NewFromInt(1)})
	assertHTTPError(t, err, http.StatusInternalServerError)
}

func TestAdminCatalogUsecase_SetStock(t *testing.T) {
	ctx := context.Background()

	t.Run("ok records before and after", func(t *testing.T) {
		u, tx := newAdminFixture()
		tx.catalog.On("FindByID", mock.Anything, int64(1)).Return(model.CatalogProduct{ID: 1, Stock: 2}, nil)
		tx.catalog.On("SetStock", mock.Anything, int64(1), int64(9)).Return(nil)
		tx.audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
			return l.Action == model.AuditActionUpdateStock &&
				l.BeforeJSON == `{"stock":2}` && l.AfterJSON == `{"stock":9}`
		})).Return(nil)

		require.NoError(t, u.AdminSetStock(ctx, "rid", 1, 9))
		tx.audit.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		u, tx := newAdminFixture()
		tx.catalog.On("FindByID", mock.Anything, int64(2)).Return(nil, repo.ErrNotFound)

		assertHTTPError(t, u.AdminSetStock(ctx, "rid", 2, 9), http.StatusNotFound)
		tx.catalog.AssertNotCalled(t, "SetStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("validation", func(t *testing.T) {
		u, _ := newAdminFixture()
		assertHTTPError(t, u.AdminSetStock(ctx, "rid", 0, 9), http.StatusBadRequest)
		assertHTTPError(t, u.AdminSetStock(ctx, "rid", 1, -1), http.StatusBadRequest)
	})
}

func TestAdminCatalogUsecase_ListAuditLogs(t *testing.T) {
	ctx := context.Background()
	u, tx := newAdminFixture()

	action := model.AuditActionUpdateStock
	id := int64(3)
	tx.audit.On("List", mock.Anything, repo.AuditLogFilter{Action: &action, ResourceID: &id, Limit: 10}).
		Return([]model.AuditLog{{ID: 1}}, nil)
	tx.audit.On("List", mock.Anything, repo.AuditLogFilter{}).Return(nil, nil)

	logs, err := u.ListAuditLogs(ctx, usecase.ListAuditLogsInput{Action: "UPDATE_STOCK", ResourceID: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, logs, 1)

	logs, err = u.ListAuditLogs(ctx, usecase.ListAuditLogsInput{})
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)

	_, err = u.ListAuditLogs(ctx, usecase.ListAuditLogsInput{Action: "DROP"})
	assertHTTPError(t, err, http.StatusBadRequest)
}
