package ports

import (
	"context"

	"go.trai.ch/ember/internal/core/domain"
)

// FetchProgress is invoked after every task in a batch settles, successfully
// or not. Callers throttle UI-facing consumption themselves.
type FetchProgress func(completed, total int, fileName string)

// Fetcher downloads artifacts with bounded parallelism, integrity
// verification and retry.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch runs a single task to completion or retry exhaustion.
	Fetch(ctx context.Context, task domain.DownloadTask) error
	// FetchAll runs a batch; each task's result is reported independently
	// and the batch never aborts early.
	FetchAll(ctx context.Context, tasks []domain.DownloadTask) []error
	// FetchAllWithProgress is FetchAll with a settle callback.
	FetchAllWithProgress(ctx context.Context, tasks []domain.DownloadTask, onProgress FetchProgress) []error
}
