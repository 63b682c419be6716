package launch

import (
	"strconv"
	"strings"

	"go.trai.ch/ember/internal/build"
	"go.trai.ch/ember/internal/core/domain"
)

// Default window size when neither the launch context nor a feature rule
// supplies one.
const (
	defaultWidth  = 854
	defaultHeight = 480
)

// placeholderTable builds the substitution table for one launch. Every
// ${key} the argument templates reference resolves through it.
func (a *Assembler) placeholderTable(merged *domain.VersionDescriptor, lc domain.LaunchContext, classpath []string, nativesDir string) map[string]string {
	identity := lc.Identity
	uuid := identity.UUID
	if uuid == "" {
		uuid = domain.OfflineUUID(identity.Username)
	}
	token := identity.AccessToken
	if token == "" {
		token = "0"
	}
	userType := identity.UserType
	if userType == "" {
		userType = "legacy"
	}

	width, height := defaultWidth, defaultHeight
	if lc.Resolution != nil {
		width, height = lc.Resolution.Width, lc.Resolution.Height
	}

	assetsIndex := merged.Assets
	if assetsIndex == "" && merged.AssetIndex != nil {
		assetsIndex = merged.AssetIndex.ID
	}

	table := map[string]string{
		"auth_player_name":  identity.Username,
		"auth_uuid":         uuid,
		"auth_access_token": token,
		"auth_session":      token,
		"user_type":         userType,
		"user_properties":   "{}",

		"version_name":      merged.ID,
		"version_type":      merged.Type,
		"game_directory":    lc.GameDir,
		"assets_root":       a.store.AssetsDir(),
		"game_assets":       a.store.AssetsDir(),
		"assets_index_name": assetsIndex,

		"natives_directory":   nativesDir,
		"library_directory":   a.store.LibrariesDir(),
		"classpath":           strings.Join(classpath, a.platform.ClasspathSeparator),
		"classpath_separator": a.platform.ClasspathSeparator,

		"launcher_name":    "ember",
		"launcher_version": build.Version,

		"resolution_width":  strconv.Itoa(width),
		"resolution_height": strconv.Itoa(height),
	}

	// Keys absent from the table stay unresolved and are pruned together
	// with their flag, so optional values only enter when actually set.
	setIfNonEmpty(table, "quickPlayPath", lc.QuickPlayPath)
	setIfNonEmpty(table, "quickPlaySingleplayer", lc.QuickPlaySingleplayer)
	setIfNonEmpty(table, "quickPlayMultiplayer", lc.QuickPlayMultiplayer)
	setIfNonEmpty(table, "quickPlayRealms", lc.QuickPlayRealms)
	return table
}

func setIfNonEmpty(table map[string]string, key, value string) {
	if value != "" {
		table[key] = value
	}
}

// substitute expands every ${key} occurrence in s from the table. Keys
// missing from the table are left in place for the pruning pass.
func substitute(s string, table map[string]string) string {
	var out strings.Builder
	for {
		start := strings.Index(s, "${")
		if start < 0 {
			break
		}
		end := strings.Index(s[start:], "}")
		if end < 0 {
			break
		}
		end += start

		key := s[start+2 : end]
		out.WriteString(s[:start])
		if value, ok := table[key]; ok {
			out.WriteString(value)
		} else {
			out.WriteString(s[start : end+1])
		}
		s = s[end+1:]
	}
	out.WriteString(s)
	return out.String()
}

// valueFlags are flags whose value arrives as a separate token. When the
// value's placeholder stays unresolved, the flag is dropped with it.
var valueFlags = map[string]bool{
	"--width":                 true,
	"--height":                true,
	"--clientId":              true,
	"--xuid":                  true,
	"--versionType":           true,
	"--quickPlayPath":         true,
	"--quickPlaySingleplayer": true,
	"--quickPlayMultiplayer":  true,
	"--quickPlayRealms":       true,
}

// pruneUnresolved drops tokens still carrying an unresolved ${placeholder},
// pulling a preceding value flag down with its orphaned value.
func pruneUnresolved(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if !strings.Contains(arg, "${") {
			out = append(out, arg)
			continue
		}
		if len(out) > 0 && valueFlags[out[len(out)-1]] {
			out = out[:len(out)-1]
		}
	}
	return out
}
