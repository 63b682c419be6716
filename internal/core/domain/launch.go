package domain

import (
	"crypto/md5"
	"fmt"
)

// Identity is the opaque account tuple supplied by the host. The core never
// inspects the access token.
type Identity struct {
	Username    string
	UUID        string
	AccessToken string
	// UserType is the account scheme identifier, e.g. "msa" or "legacy".
	UserType string
}

// Offline reports whether the identity carries no access token.
func (i Identity) Offline() bool {
	return i.AccessToken == ""
}

// OfflineUUID derives the deterministic offline-mode UUID for a player name:
// the md5 of "OfflinePlayer:<name>" with version-3 and variant bits set.
func OfflineUUID(name string) string {
	sum := md5.Sum([]byte("OfflinePlayer:" + name))
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return fmt.Sprintf("%x-%x-%x-%x-%x", sum[0:4], sum[4:6], sum[6:8], sum[8:10], sum[10:16])
}

// Resolution is the requested game window size.
type Resolution struct {
	Width  int
	Height int
}

// LaunchContext is the ephemeral per-launch input of the launch assembler.
// It is built fresh for every launch call and owned by the assembler for the
// duration of that call.
type LaunchContext struct {
	Identity Identity

	// JavaPath is the resolved Java executable.
	JavaPath string
	// MemoryMB is the -Xmx value in megabytes.
	MemoryMB int
	// Preset names a JVM tuning preset; empty means none.
	Preset string
	// CustomFlags are appended after preset flags so they win positionally.
	CustomFlags []string

	Resolution *Resolution

	// GameDir is the profile's working directory.
	GameDir string
	// ProfileID keys progress and lifecycle events for this launch.
	ProfileID string

	// Features toggles rule-gated argument groups, e.g. "has_custom_resolution".
	Features map[string]bool

	QuickPlayPath         string
	QuickPlaySingleplayer string
	QuickPlayMultiplayer  string
	QuickPlayRealms       string
}
