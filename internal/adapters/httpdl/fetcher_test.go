package httpdl_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/ember/internal/adapters/fs"
	"go.trai.ch/ember/internal/adapters/httpdl"
	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/ember/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const payload = "library bytes"

// sha1 of payload.
const payloadSHA1 = "fe49591df2f11d4368a3a84a54d331d06ab1387b"

func newFetcher(t *testing.T) *httpdl.Fetcher {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	return httpdl.New(fs.NewVerifier(), log, 4)
}

func TestFetcher_Fetch_DownloadsAndVerifies(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "libs", "thing.jar")
	task := domain.DownloadTask{URL: srv.URL, Path: dest, SHA1: payloadSHA1}

	f := newFetcher(t)
	require.NoError(t, f.Fetch(context.Background(), task))
	require.Equal(t, int32(1), hits.Load())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, payload, string(data))
}

func TestFetcher_Fetch_IdempotentRerun(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "thing.jar")
	task := domain.DownloadTask{URL: srv.URL, Path: dest, SHA1: payloadSHA1}

	f := newFetcher(t)
	require.NoError(t, f.Fetch(context.Background(), task))
	// Second run finds a valid file and performs zero network requests.
	require.NoError(t, f.Fetch(context.Background(), task))
	require.Equal(t, int32(1), hits.Load())
}

func TestFetcher_Fetch_SizeOnlyValidation(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "sized.bin")
	require.NoError(t, os.WriteFile(dest, []byte(payload), 0o644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("no request expected for a size-valid file")
	}))
	defer srv.Close()

	f := newFetcher(t)
	task := domain.DownloadTask{URL: srv.URL, Path: dest, Size: int64(len(payload))}
	require.NoError(t, f.Fetch(context.Background(), task))
}

func TestFetcher_Fetch_RetriesThenSucceeds(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) <= 2 {
			_, _ = w.Write([]byte("corrupted"))
			return
		}
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "thing.jar")
	task := domain.DownloadTask{URL: srv.URL, Path: dest, SHA1: payloadSHA1}

	f := newFetcher(t)
	require.NoError(t, f.Fetch(context.Background(), task))
	require.Equal(t, int32(3), hits.Load())
}

func TestFetcher_Fetch_RetryExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("always wrong"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "thing.jar")
	task := domain.DownloadTask{URL: srv.URL, Path: dest, SHA1: payloadSHA1}

	f := newFetcher(t)
	err := f.Fetch(context.Background(), task)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrRetryExhausted)
}

func TestFetcher_FetchAll_IndependentResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	dir := t.TempDir()
	tasks := []domain.DownloadTask{
		{URL: srv.URL + "/a", Path: filepath.Join(dir, "a.jar"), SHA1: payloadSHA1},
		{URL: srv.URL + "/bad", Path: filepath.Join(dir, "bad.jar"), SHA1: payloadSHA1},
		{URL: srv.URL + "/b", Path: filepath.Join(dir, "b.jar"), SHA1: payloadSHA1},
	}

	f := newFetcher(t)
	results := f.FetchAll(context.Background(), tasks)
	require.Len(t, results, 3)
	require.NoError(t, results[0])
	require.Error(t, results[1])
	require.NoError(t, results[2])
}

func TestFetcher_FetchAllWithProgress_ReportsEverySettle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	dir := t.TempDir()
	tasks := []domain.DownloadTask{
		{URL: srv.URL + "/a", Path: filepath.Join(dir, "a.jar"), SHA1: payloadSHA1},
		{URL: srv.URL + "/b", Path: filepath.Join(dir, "b.jar"), SHA1: payloadSHA1},
	}

	var calls atomic.Int32
	var lastCompleted atomic.Int32
	f := newFetcher(t)
	results := f.FetchAllWithProgress(context.Background(), tasks, func(completed, total int, _ string) {
		calls.Add(1)
		lastCompleted.Store(int32(completed))
		require.Equal(t, 2, total)
	})

	for _, err := range results {
		require.NoError(t, err)
	}
	require.Equal(t, int32(2), calls.Load())
	require.Equal(t, int32(2), lastCompleted.Load())
}
