package out

import "context"

// KVStore is the storage capability behind the progress records. Values are
// opaque bytes; a missing key is reported through found, not an error.
type KVStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	ListKeys(ctx context.Context, prefix string) ([]string, error)
}
