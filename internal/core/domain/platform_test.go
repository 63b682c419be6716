package domain_test

import (
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/ember/internal/core/domain"
)

func TestCurrentPlatform_Separators(t *testing.T) {
	p := domain.CurrentPlatform()

	require.Equal(t, string(os.PathSeparator), p.PathSeparator)
	if runtime.GOOS == "windows" {
		require.Equal(t, ";", p.ClasspathSeparator)
		require.Equal(t, ".exe", p.ExeSuffix)
	} else {
		require.Equal(t, ":", p.ClasspathSeparator)
		require.Empty(t, p.ExeSuffix)
	}
}

func TestCurrentPlatform_SchemaKeys(t *testing.T) {
	p := domain.CurrentPlatform()

	require.NotEqual(t, "darwin", p.OS)
	require.NotEqual(t, "amd64", p.Arch)
	require.NotEqual(t, "386", p.Arch)
	require.Equal(t, "natives-"+p.OS, p.NativeClassifier())
}
