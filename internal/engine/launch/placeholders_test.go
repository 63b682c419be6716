package launch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ember/internal/core/domain"
)

func TestSubstitute(t *testing.T) {
	table := map[string]string{"name": "Steve", "dir": "/data"}

	assert.Equal(t, "hello Steve", substitute("hello ${name}", table))
	assert.Equal(t, "/data/saves", substitute("${dir}/saves", table))
	assert.Equal(t, "Steve@/data", substitute("${name}@${dir}", table))
	// Unknown keys survive for the pruning pass.
	assert.Equal(t, "${unknown}", substitute("${unknown}", table))
	assert.Equal(t, "plain", substitute("plain", table))
}

func TestPruneUnresolved(t *testing.T) {
	pruned := pruneUnresolved([]string{"--width", "${unset_width}", "--demo"})
	assert.Equal(t, []string{"--demo"}, pruned)

	// A non-flag predecessor stays.
	pruned = pruneUnresolved([]string{"--demo", "${unset}"})
	assert.Equal(t, []string{"--demo"}, pruned)

	pruned = pruneUnresolved([]string{"--quickPlayPath", "${quickPlayPath}", "--username", "Steve"})
	assert.Equal(t, []string{"--username", "Steve"}, pruned)
}

func TestFilterJVMTemplate(t *testing.T) {
	kept, modules := filterJVMTemplate([]string{
		"-Xss1M",
		"-cp", "${classpath}",
		"-p", "${library_directory}/a.jar",
		"-Dlog4j2.formatMsgNoLookups=true",
	})
	assert.Equal(t, []string{"-Xss1M", "-Dlog4j2.formatMsgNoLookups=true"}, kept)
	assert.Equal(t, []string{"${library_directory}/a.jar"}, modules)
}

func TestPresetFlags(t *testing.T) {
	flags, ok := PresetFlags("aikars", 6144)
	require.True(t, ok)
	assert.Contains(t, flags, "-XX:+UseG1GC")
	assert.Contains(t, flags, "-Xms6144M")

	flags, ok = PresetFlags("zgc_gen", 4096)
	require.True(t, ok)
	assert.Equal(t, []string{"-XX:+UseZGC", "-XX:+ZGenerational"}, flags)
	assert.NotContains(t, flags, "-Xms4096M")

	_, ok = PresetFlags("turbo", 4096)
	assert.False(t, ok)
}

func TestNormalizePath(t *testing.T) {
	caseSensitive := domain.Platform{OS: "linux"}
	assert.Equal(t, "/libs/a.jar", normalizePath(`\libs//a.jar`, caseSensitive))
	assert.Equal(t, "/Libs/A.jar", normalizePath("/Libs/A.jar", caseSensitive))

	caseInsensitive := domain.Platform{OS: "windows", CaseInsensitiveFS: true}
	assert.Equal(t, "c:/libs/a.jar", normalizePath(`C:\Libs\A.jar`, caseInsensitive))
}

func TestCompatFlags(t *testing.T) {
	assert.Equal(t, []string{"-XstartOnFirstThread"}, compatFlags(domain.Platform{OS: "osx"}))
	assert.Equal(t, []string{"-Dos.name=Windows 10", "-Dos.version=10.0"}, compatFlags(domain.Platform{OS: "windows"}))
	assert.Equal(t, []string{"-Xss1M"}, compatFlags(domain.Platform{OS: "linux", Arch: "x86"}))
	assert.Empty(t, compatFlags(domain.Platform{OS: "linux", Arch: "x86_64"}))
}
