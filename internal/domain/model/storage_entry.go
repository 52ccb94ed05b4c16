package model

import "time"

// キー1つに文字列1つの汎用KV行（カートのスナップショット置き場）
type StorageEntry struct {
	Key       string    `gorm:"primaryKey;type:varchar(255)" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (StorageEntry) TableName() string {
	return "storage_entries"
}
