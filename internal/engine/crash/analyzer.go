// Package crash recognizes known failure signatures in game logs and turns
// them into actionable reports.
package crash

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/ember/internal/core/domain"
)

// Analyzer scans log content for known crash signatures.
type Analyzer struct{}

// New creates a new Analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

var (
	classVersionRe = regexp.MustCompile(`class file version (\d+)`)
	missingDepRe   = regexp.MustCompile(`(?i)requires .*? of (?:mod )?'?([\w\- ]+)'?, which is missing`)
)

// ScanFile reads the log at path and returns the first recognized
// signature, or nil. Missing or unreadable logs yield nil; the scan is
// best-effort by design.
func (a *Analyzer) ScanFile(path string) *domain.CrashReport {
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the profile directory
	if err != nil {
		return nil
	}
	return a.Analyze(string(data))
}

// Analyze matches the signature table against log content. The first match
// wins; unrecognized content returns nil.
func (a *Analyzer) Analyze(content string) *domain.CrashReport {
	switch {
	case strings.Contains(content, "java.lang.OutOfMemoryError"):
		return &domain.CrashReport{
			Title:       "Out of memory",
			Description: "The game ran out of Java heap space.",
			Solution:    "Increase the memory limit in the profile settings and launch again.",
		}

	case strings.Contains(content, "UnsupportedClassVersionError"):
		return unsupportedClassReport(content)

	case strings.Contains(content, "Incompatible mods found!"):
		return &domain.CrashReport{
			Title:       "Incompatible mods",
			Description: "The loader refused to start because installed mods are incompatible with this game or loader version.",
			Solution:    "Check the log for the listed mods and update or remove them.",
		}

	case missingDepRe.MatchString(content):
		m := missingDepRe.FindStringSubmatch(content)
		return &domain.CrashReport{
			Title:       "Missing mod dependency",
			Description: fmt.Sprintf("A mod requires %q, which is not installed.", strings.TrimSpace(m[1])),
			Solution:    "Install the missing dependency or remove the mod that requires it.",
		}

	case strings.Contains(content, "Mixin apply failed") || strings.Contains(content, "MixinApplyError"):
		return &domain.CrashReport{
			Title:       "Mod conflict",
			Description: "A mod failed to patch the game (mixin application error), usually because two mods modify the same code.",
			Solution:    "Update the mod named in the log, or remove recently added mods one by one.",
		}

	case strings.Contains(content, "EXCEPTION_ACCESS_VIOLATION") && strings.Contains(content, "atio6axx.dll"):
		return &domain.CrashReport{
			Title:       "AMD graphics driver crash",
			Description: "The game crashed inside the AMD OpenGL driver (atio6axx.dll).",
			Solution:    "Update your AMD graphics driver; if it persists, try the latest optional driver release.",
		}

	default:
		return nil
	}
}

func unsupportedClassReport(content string) *domain.CrashReport {
	desc := "The game or a mod was built for a newer Java release than the one used to launch."
	if m := classVersionRe.FindStringSubmatch(content); m != nil {
		if classVer, err := strconv.Atoi(m[1]); err == nil && classVer > 44 {
			desc = fmt.Sprintf("The game or a mod requires Java %d, but an older runtime was used to launch.", classVer-44)
		}
	}
	return &domain.CrashReport{
		Title:       "Wrong Java version",
		Description: desc,
		Solution:    "Let the launcher provision the required Java runtime, or point the Java override at a matching installation.",
	}
}
