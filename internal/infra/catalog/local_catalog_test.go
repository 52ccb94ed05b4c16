package catalog

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type CatalogRepoMock struct{ mock.Mock }

func (m *CatalogRepoMock) ListActive(ctx context.Context, q repo.CatalogListQuery) ([]model.CatalogProduct, int64, error) {
	panic("not used in LocalCatalog tests")
}

func (m *CatalogRepoMock) FindByID(ctx context.Context, id int64) (model.CatalogProduct, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.CatalogProduct)
	return p, args.Error(1)
}

func (m *CatalogRepoMock) Create(ctx context.Context, p model.CatalogProduct) (model.CatalogProduct, error) {
	panic("not used in LocalCatalog tests")
}

func (m *CatalogRepoMock) SetStock(ctx context.Context, id int64, stock int64) error {
	panic("not used in LocalCatalog tests")
}

func TestLocalCatalog_ActiveProduct(t *testing.T) {
	r := new(CatalogRepoMock)
	r.On("FindByID", mock.Anything, int64(2)).Return(model.CatalogProduct{
		ID: 2, Name: "Tênis VR Caminhada", Price: decimal.RequireFromString("139.9"), Stock: 5, IsActive: true,
	}, nil)

	c := NewLocalCatalog(r)

	s, err := c.GetStock(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, model.StockEntry{ID: 2, Amount: 5}, s)

	p, err := c.GetProduct(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Tênis VR Caminhada", p.Name)
	assert.Equal(t, int64(0), p.Amount)

	r.AssertExpectations(t)
}

func TestLocalCatalog_InactiveIsNotFound(t *testing.T) {
	r := new(CatalogRepoMock)
	r.On("FindByID", mock.Anything, int64(3)).Return(model.CatalogProduct{ID: 3, Stock: 5, IsActive: false}, nil)

	_, err := NewLocalCatalog(r).GetStock(context.Background(), 3)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestLocalCatalog_RepoError(t *testing.T) {
	r := new(CatalogRepoMock)
	r.On("FindByID", mock.Anything, int64(9)).Return(model.CatalogProduct{}, repo.ErrNotFound)

	_, err := NewLocalCatalog(r).GetProduct(context.Background(), 9)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
