package usecase

import "errors"

// 利用者に出す文言（Notifier とエラー本文で共通）
const (
	MsgOutOfStock    = "requested quantity out of stock"
	MsgAddFailed     = "error adding product"
	MsgRemoveFailed  = "error removing product"
	MsgMinimumAmount = "cannot have less than one unit"
	MsgUpdateFailed  = "error changing product quantity"
)

type CartErrorKind string

const (
	// カタログ取得の失敗（存在しない id / 通信エラー）
	KindCatalog     CartErrorKind = "catalog"
	KindValidation  CartErrorKind = "validation"
	KindOutOfStock  CartErrorKind = "out_of_stock"
	KindPersistence CartErrorKind = "persistence"
)

// CartError はカート操作1回分の失敗。Message は Notifier に出したものと同じ。
type CartError struct {
	Kind    CartErrorKind
	Message string
	Err     error
}

func (e *CartError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CartError) Unwrap() error {
	return e.Err
}

func AsCartError(err error) (*CartError, bool) {
	var ce *CartError
	ok := errors.As(err, &ce)
	return ce, ok
}
