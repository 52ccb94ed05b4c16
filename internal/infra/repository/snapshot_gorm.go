package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// storage_entries テーブルをKVとして使う
type SnapshotGormRepository struct {
	db *gorm.DB
}

// DI
func NewSnapshotGormRepository(db *gorm.DB) *SnapshotGormRepository {
	return &SnapshotGormRepository{db: db}
}

func (r *SnapshotGormRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var e model.StorageEntry

	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&e).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

// 同じキーは上書き（1文で upsert するので途中の状態は見えない）
func (r *SnapshotGormRepository) Set(ctx context.Context, key string, value string) error {
	e := model.StorageEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&e).Error
}

func (r *SnapshotGormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
