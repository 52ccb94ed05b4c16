package model

// StockEntry はカタログが返す在庫数。カート側では永続化しない。
type StockEntry struct {
	ID     int64 `json:"id"`
	Amount int64 `json:"amount"`
}
