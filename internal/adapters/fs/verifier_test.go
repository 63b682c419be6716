package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/ember/internal/adapters/fs"
	"go.trai.ch/ember/internal/core/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVerifier_Compute_SHA1(t *testing.T) {
	path := writeFile(t, "hello.txt", "hello world")

	v := fs.NewVerifier()
	digest, err := v.Compute(path, domain.AlgoSHA1)
	require.NoError(t, err)
	require.Equal(t, "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed", digest)
}

func TestVerifier_Compute_SHA512(t *testing.T) {
	path := writeFile(t, "hello.txt", "hello world")

	v := fs.NewVerifier()
	digest, err := v.Compute(path, domain.AlgoSHA512)
	require.NoError(t, err)
	require.Equal(t,
		"309ecc489c12d6eb4cc40f50c902f2b4d0ed77ee511a7c7a9bcd3ca86d4cd86f"+
			"989dd35bc5ff499670da34255b45b0cfd830e81f605dcf7dc5542e93ae9cd76f",
		digest)
}

func TestVerifier_Verify_CaseInsensitive(t *testing.T) {
	path := writeFile(t, "hello.txt", "hello world")

	v := fs.NewVerifier()
	ok, err := v.Verify(path, domain.AlgoSHA1, "2AAE6C35C94FCFB415DBE95F408B9CE91EE846ED")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifier_Verify_Mismatch(t *testing.T) {
	path := writeFile(t, "hello.txt", "hello world")

	v := fs.NewVerifier()
	ok, err := v.Verify(path, domain.AlgoSHA1, "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifier_Verify_MissingFile(t *testing.T) {
	v := fs.NewVerifier()
	_, err := v.Verify(filepath.Join(t.TempDir(), "missing.jar"), domain.AlgoSHA1, "00")
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrFilesystem)
}

func TestVerifier_Verify_RevalidatesAfterChange(t *testing.T) {
	path := writeFile(t, "hello.txt", "hello world")

	v := fs.NewVerifier()
	ok, err := v.Verify(path, domain.AlgoSHA1, "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed")
	require.NoError(t, err)
	require.True(t, ok)

	// Rewrite the file; the cached entry must not mask the change.
	require.NoError(t, os.WriteFile(path, []byte("something else"), 0o644))
	ok, err = v.Verify(path, domain.AlgoSHA1, "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifier_Compute_UnsupportedAlgorithm(t *testing.T) {
	path := writeFile(t, "hello.txt", "hello world")

	v := fs.NewVerifier()
	_, err := v.Compute(path, domain.Algorithm("md5"))
	require.Error(t, err)
}
