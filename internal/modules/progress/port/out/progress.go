package out

import (
	"context"

	"miftah/internal/modules/progress/domain"
)

// KeyValueStore is the string-keyed local storage the tracker persists to.
// Get reports false when the key is absent.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// ReportWriter renders a progress report and, when path is set, merges it
// into the note at path. It returns the rendered note.
type ReportWriter interface {
	Write(ctx context.Context, path string, report domain.Report) (string, error)
}
