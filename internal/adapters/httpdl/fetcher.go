// Package httpdl implements the bounded-parallelism download manager with
// integrity verification and retry.
package httpdl

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

var _ ports.Fetcher = (*Fetcher)(nil)

const (
	// DefaultConcurrency is the download semaphore width.
	DefaultConcurrency = 8
	// maxAttempts is the per-task retry budget.
	maxAttempts = 3
	// backoffStep is multiplied by the attempt number between retries.
	backoffStep = 500 * time.Millisecond
)

// Fetcher downloads artifacts with a global concurrency bound. Every task is
// pre-validated against its digest so re-running a batch over a populated
// store performs no network requests.
type Fetcher struct {
	client   *http.Client
	sem      *semaphore.Weighted
	verifier ports.Verifier
	logger   ports.Logger
}

// New creates a Fetcher. A non-positive concurrency falls back to the
// default width.
func New(verifier ports.Verifier, logger ports.Logger, concurrency int) *Fetcher {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Fetcher{
		client: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				ResponseHeaderTimeout: 15 * time.Second,
			},
		},
		sem:      semaphore.NewWeighted(int64(concurrency)),
		verifier: verifier,
		logger:   logger,
	}
}

// Fetch runs a single task to completion or retry exhaustion. The semaphore
// is acquired before any network I/O and held until the task settles.
func (f *Fetcher) Fetch(ctx context.Context, task domain.DownloadTask) error {
	if err := f.sem.Acquire(ctx, 1); err != nil {
		return zerr.Wrap(err, "failed to acquire download slot")
	}
	defer f.sem.Release(1)

	return f.fetchLocked(ctx, task)
}

func (f *Fetcher) fetchLocked(ctx context.Context, task domain.DownloadTask) error {
	// An existing, valid destination short-circuits the task.
	if ok, _ := f.validateExisting(task); ok {
		return nil
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return zerr.Wrap(ctx.Err(), "download canceled")
			case <-time.After(time.Duration(attempt) * backoffStep):
			}
		}

		lastErr = f.download(ctx, task)
		if lastErr == nil {
			return nil
		}
		f.logger.Warn(fmt.Sprintf("download attempt %d/%d failed: %s: %v", attempt, maxAttempts, task.FileName(), lastErr))
	}

	err := zerr.Wrap(domain.ErrRetryExhausted, lastErr.Error())
	err = zerr.With(err, "attempts", maxAttempts)
	err = zerr.With(err, "url", task.URL)
	return err
}

// FetchAll runs a batch. Each task's result is reported independently at the
// task's input index; the batch never aborts early.
func (f *Fetcher) FetchAll(ctx context.Context, tasks []domain.DownloadTask) []error {
	return f.FetchAllWithProgress(ctx, tasks, nil)
}

// FetchAllWithProgress is FetchAll invoking onProgress after every settle.
func (f *Fetcher) FetchAllWithProgress(ctx context.Context, tasks []domain.DownloadTask, onProgress ports.FetchProgress) []error {
	results := make([]error, len(tasks))

	var (
		mu   sync.Mutex
		done int
	)

	var g errgroup.Group
	for i, task := range tasks {
		g.Go(func() error {
			results[i] = f.Fetch(ctx, task)

			if onProgress != nil {
				mu.Lock()
				done++
				completed := done
				mu.Unlock()
				onProgress(completed, len(tasks), task.FileName())
			}
			// Task failures are reported through the results slice, never as
			// a group error, so unrelated tasks keep running.
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// validateExisting checks the destination against the task's digest, or its
// expected size when no digest is known. No file or no criteria means
// the task must download.
func (f *Fetcher) validateExisting(task domain.DownloadTask) (bool, error) {
	info, err := os.Stat(task.Path)
	if err != nil {
		return false, nil //nolint:nilerr // Missing file simply means download
	}

	switch {
	case task.SHA512 != "":
		return f.verifier.Verify(task.Path, domain.AlgoSHA512, task.SHA512)
	case task.SHA1 != "":
		return f.verifier.Verify(task.Path, domain.AlgoSHA1, task.SHA1)
	case task.Size > 0:
		return info.Size() == task.Size, nil
	default:
		return false, nil
	}
}

// download streams one attempt to disk and verifies the result. The payload
// goes to a temp file renamed into place, so concurrent readers never see a
// partial write.
func (f *Fetcher) download(ctx context.Context, task domain.DownloadTask) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, task.URL, nil)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrNetwork, err.Error()), "url", task.URL)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrNetwork, err.Error()), "url", task.URL)
	}
	defer resp.Body.Close() //nolint:errcheck // Best effort close in defer

	if resp.StatusCode != http.StatusOK {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrNetwork, "unexpected status"), "status", resp.StatusCode), "url", task.URL)
	}

	dir := filepath.Dir(task.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrFilesystem, err.Error()), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(task.Path)+".part-*")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrFilesystem, err.Error()), "path", dir)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(domain.ErrNetwork, err.Error()), "url", task.URL)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(domain.ErrFilesystem, err.Error()), "path", tmpName)
	}
	if err := os.Rename(tmpName, task.Path); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(domain.ErrFilesystem, err.Error()), "path", task.Path)
	}

	return f.verifyFresh(task)
}

// verifyFresh re-validates a freshly downloaded file. A mismatch is a
// retryable failure, not a silent accept.
func (f *Fetcher) verifyFresh(task domain.DownloadTask) error {
	algo := domain.Algorithm("")
	expected := ""
	switch {
	case task.SHA512 != "":
		algo, expected = domain.AlgoSHA512, task.SHA512
	case task.SHA1 != "":
		algo, expected = domain.AlgoSHA1, task.SHA1
	case task.Size > 0:
		info, err := os.Stat(task.Path)
		if err != nil {
			return zerr.With(zerr.Wrap(domain.ErrFilesystem, err.Error()), "path", task.Path)
		}
		if info.Size() != task.Size {
			return zerr.With(zerr.With(zerr.Wrap(domain.ErrIntegrityMismatch, "size mismatch"), "expected_size", task.Size), "actual_size", info.Size())
		}
		return nil
	default:
		return nil
	}

	ok, err := f.verifier.Verify(task.Path, algo, expected)
	if err != nil {
		return err
	}
	if !ok {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrIntegrityMismatch, "digest mismatch"), "path", task.Path), "expected", expected)
	}
	return nil
}
