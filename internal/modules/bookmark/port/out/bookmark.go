package out

import "context"

// KeyValueStore is the same string-keyed storage the progress tracker uses;
// bookmarks live under their own key beside it.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
