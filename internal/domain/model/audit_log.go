package model

import "time"

// 商品登録、在庫更新など。
type AuditAction string

const (
	//商品を登録した操作。
	AuditActionCreateProduct AuditAction = "CREATE_PRODUCT"
	//在庫を更新した操作。
	AuditActionUpdateStock AuditAction = "UPDATE_STOCK"
)

// 何に対する操作か
type AuditResourceType string

const (
	//商品に対する操作。
	AuditResourceProduct AuditResourceType = "product"
)

// 監査ログ（管理者操作ログ）。
// 管理トークンは共有なので「誰が」はリクエストIDで追う。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作したリクエストのID（X-Request-ID）。
	RequestID string `gorm:"type:varchar(64);not null;index" json:"request_id"`

	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`

	ResourceID int64 `gorm:"not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`

	//JSON文字列で保存する。
	AfterJSON string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
