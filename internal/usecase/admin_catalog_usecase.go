package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// 管理者のカタログ更新。更新と監査ログは同じTxで書く。
type AdminCatalogUsecase struct {
	tx        repo.TransactionManager
	auditRepo repo.AuditLogRepository
}

// DI
func NewAdminCatalogUsecase(tx repo.TransactionManager, auditRepo repo.AuditLogRepository) *AdminCatalogUsecase {
	return &AdminCatalogUsecase{tx: tx, auditRepo: auditRepo}
}

type AdminCreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Stock       int64
	IsActive    bool
}

func (u *AdminCatalogUsecase) AdminCreateProduct(ctx context.Context, requestID string, in AdminCreateProductInput) (int64, error) {
	if strings.TrimSpace(in.Name) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price.IsNegative() {
		return 0, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Stock < 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}

	var id int64
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Catalog().Create(ctx, model.CatalogProduct{
			Name:        strings.TrimSpace(in.Name),
			Description: in.Description,
			Price:       in.Price,
			ImageURL:    strings.TrimSpace(in.ImageURL),
			Stock:       in.Stock,
			IsActive:    in.IsActive,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		id = p.ID

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			RequestID:    requestID,
			Action:       model.AuditActionCreateProduct,
			ResourceType: model.AuditResourceProduct,
			ResourceID:   p.ID,
			AfterJSON:    toJSON(p),
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// 在庫の現在値を設定
func (u *AdminCatalogUsecase) AdminSetStock(ctx context.Context, requestID string, productID int64, stock int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Catalog().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		err = r.Catalog().SetStock(ctx, productID, stock)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			RequestID:    requestID,
			Action:       model.AuditActionUpdateStock,
			ResourceType: model.AuditResourceProduct,
			ResourceID:   productID,
			BeforeJSON:   toJSON(map[string]int64{"stock": p.Stock}),
			AfterJSON:    toJSON(map[string]int64{"stock": stock}),
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

type ListAuditLogsInput struct {
	Action     string
	ResourceID int64
	Limit      int
	Offset     int
}

func (u *AdminCatalogUsecase) ListAuditLogs(ctx context.Context, in ListAuditLogsInput) ([]model.AuditLog, error) {
	var f repo.AuditLogFilter
	switch model.AuditAction(in.Action) {
	case "":
	case model.AuditActionCreateProduct, model.AuditActionUpdateStock:
		a := model.AuditAction(in.Action)
		f.Action = &a
	default:
		return nil, NewHTTPError(http.StatusBadRequest, "invalid action")
	}
	if in.ResourceID < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid resource_id")
	}
	if in.ResourceID > 0 {
		id := in.ResourceID
		f.ResourceID = &id
	}
	f.Limit = in.Limit
	f.Offset = in.Offset

	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if logs == nil {
		logs = []model.AuditLog{}
	}
	return logs, nil
}

func toJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
