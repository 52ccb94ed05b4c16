package repository

import "context"

// カートのスナップショットを置くKVストア。
// Get はキーが無ければ ok=false, err=nil を返す。
type SnapshotStorage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
}
