// Package launch assembles the full command line for a launchable version:
// classpath, module path, natives, JVM tuning and game arguments.
package launch

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/ember/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// bootstrapMainClass marks module-path based loaders whose bootstrap
// refuses a client jar on the classpath.
const bootstrapMainClass = "cpw.mods.bootstraplauncher.BootstrapLauncher"

const fallbackMemoryMB = 4096

// Assembler turns a resolved version and a launch context into a spawnable
// process specification.
type Assembler struct {
	logger   ports.Logger
	store    ports.Store
	resolver *resolver.Resolver
	platform domain.Platform
}

// NewAssembler creates an Assembler.
func NewAssembler(logger ports.Logger, store ports.Store, res *resolver.Resolver) *Assembler {
	return &Assembler{
		logger:   logger,
		store:    store,
		resolver: res,
		platform: domain.CurrentPlatform(),
	}
}

// Assemble builds the spawn specification for versionID under the given
// launch context. The version must be fully installed.
func (a *Assembler) Assemble(ctx context.Context, versionID string, lc domain.LaunchContext) (*ports.SpawnSpec, error) {
	merged, err := a.resolver.LoadMerged(ctx, versionID)
	if err != nil {
		return nil, err
	}
	if merged.MainClass == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrMetadataParse, "descriptor incomplete"), "missing", "mainClass")
	}
	chain, err := a.resolver.Chain(ctx, versionID)
	if err != nil {
		return nil, err
	}
	rootID := chain[len(chain)-1].ID

	nativesDir, err := a.extractNatives(merged, versionID)
	if err != nil {
		return nil, err
	}

	classpath, err := a.buildClasspath(merged, rootID)
	if err != nil {
		return nil, err
	}

	jvmTemplate := expandTokens(argTokens(merged).JVM, a.platform, lc.Features)
	jvmTemplate, moduleValues := filterJVMTemplate(jvmTemplate)

	// The module path may reference ${library_directory}; resolve it with a
	// preliminary table, then drop classpath entries the module path claims.
	preliminary := a.placeholderTable(merged, lc, classpath, nativesDir)
	modulePath := a.resolveModulePath(moduleValues, preliminary)
	classpath = a.removeModulePathConflicts(classpath, modulePath)

	table := a.placeholderTable(merged, lc, classpath, nativesDir)
	jvmArgs := pruneUnresolved(substituteAll(jvmTemplate, table))
	gameArgs := pruneUnresolved(substituteAll(a.gameTemplate(merged, lc), table))

	args := a.orderArgs(lc, jvmArgs, modulePath, classpath, merged.MainClass, gameArgs, nativesDir)
	return &ports.SpawnSpec{
		JavaPath:   lc.JavaPath,
		Args:       args,
		WorkingDir: lc.GameDir,
		ProfileID:  lc.ProfileID,
	}, nil
}

// orderArgs lays the command line out in its fixed shape: memory cap,
// platform compatibility flags, preset and custom tuning, the filtered JVM
// template, natives path, module path, classpath, main class, game args.
func (a *Assembler) orderArgs(lc domain.LaunchContext, jvmArgs, modulePath, classpath []string, mainClass string, gameArgs []string, nativesDir string) []string {
	memory := lc.MemoryMB
	if memory <= 0 {
		memory = fallbackMemoryMB
	}

	args := []string{fmt.Sprintf("-Xmx%dM", memory)}
	args = append(args, compatFlags(a.platform)...)

	if lc.Preset != "" {
		if flags, ok := PresetFlags(lc.Preset, memory); ok {
			args = append(args, flags...)
		} else {
			a.logger.Warn("unknown jvm preset: " + lc.Preset)
		}
	}
	args = append(args, lc.CustomFlags...)
	args = append(args, jvmArgs...)

	if !hasLibraryPathFlag(jvmArgs) {
		args = append(args, "-Djava.library.path="+nativesDir)
	}
	if len(modulePath) > 0 {
		args = append(args, "-p", strings.Join(modulePath, a.platform.ClasspathSeparator))
	}
	args = append(args, "-cp", strings.Join(classpath, a.platform.ClasspathSeparator))
	args = append(args, mainClass)
	return append(args, gameArgs...)
}

// compatFlags returns platform quirks older descriptors do not carry in
// their own rule-gated templates.
func compatFlags(p domain.Platform) []string {
	switch {
	case p.OS == "osx":
		return []string{"-XstartOnFirstThread"}
	case p.OS == "windows":
		return []string{"-Dos.name=Windows 10", "-Dos.version=10.0"}
	case p.Arch == "x86":
		return []string{"-Xss1M"}
	}
	return nil
}

func hasLibraryPathFlag(args []string) bool {
	for _, arg := range args {
		if strings.HasPrefix(arg, "-Djava.library.path=") {
			return true
		}
	}
	return false
}

// buildClasspath collects the rule-selected library jars plus the root
// ancestor's client jar, deduplicated in first-seen order. Bootstrap-style
// loaders bring their own game layer, so the client jar stays off.
func (a *Assembler) buildClasspath(merged *domain.VersionDescriptor, rootID string) ([]string, error) {
	var entries []string
	for _, lib := range merged.Libraries {
		if !domain.RulesAllow(lib.Rules, a.platform, nil) {
			continue
		}
		rel := ""
		if artifact := lib.Artifact(); artifact != nil && artifact.Path != "" {
			rel = artifact.Path
		} else {
			var err error
			rel, err = domain.MavenPath(lib.Name)
			if err != nil {
				return nil, zerr.With(err, "library", lib.Name)
			}
		}
		entries = append(entries, a.store.LibraryPath(rel))
	}

	if merged.MainClass != bootstrapMainClass {
		entries = append(entries, a.store.ClientJarPath(rootID))
	}
	return a.dedup(entries), nil
}

// dedup removes duplicate paths, comparing normalized forms but keeping the
// first-seen original spelling.
func (a *Assembler) dedup(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		key := normalizePath(p, a.platform)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// normalizePath canonicalizes a path for comparison only: forward slashes,
// collapsed separators, and case-folding on case-insensitive filesystems.
func normalizePath(p string, platform domain.Platform) string {
	s := strings.ReplaceAll(p, "\\", "/")
	for strings.Contains(s, "//") {
		s = strings.ReplaceAll(s, "//", "/")
	}
	if platform.CaseInsensitiveFS {
		s = strings.ToLower(s)
	}
	return s
}

// resolveModulePath substitutes and splits the extracted module path
// values into a deduplicated entry list.
func (a *Assembler) resolveModulePath(values []string, table map[string]string) []string {
	var entries []string
	for _, value := range values {
		for _, entry := range strings.Split(substitute(value, table), a.platform.ClasspathSeparator) {
			if entry != "" {
				entries = append(entries, entry)
			}
		}
	}
	return a.dedup(entries)
}

// removeModulePathConflicts drops classpath entries the module path already
// claims; the JVM rejects a jar appearing on both.
func (a *Assembler) removeModulePathConflicts(classpath, modulePath []string) []string {
	if len(modulePath) == 0 {
		return classpath
	}
	claimed := make(map[string]bool, len(modulePath))
	for _, entry := range modulePath {
		claimed[normalizePath(entry, a.platform)] = true
	}
	out := classpath[:0]
	for _, entry := range classpath {
		if !claimed[normalizePath(entry, a.platform)] {
			out = append(out, entry)
		}
	}
	return out
}

// expandTokens flattens the rule-gated template into plain strings for the
// current platform and feature set.
func expandTokens(tokens []domain.ArgToken, platform domain.Platform, features map[string]bool) []string {
	var out []string
	for _, token := range tokens {
		if !domain.RulesAllow(token.Rules, platform, features) {
			continue
		}
		out = append(out, token.Values...)
	}
	return out
}

// filterJVMTemplate strips classpath flags (the assembler owns those) and
// pulls module path declarations out for separate handling.
func filterJVMTemplate(args []string) (kept, moduleValues []string) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-cp", "-classpath", "--class-path":
			i++
		case "-p", "--module-path":
			if i+1 < len(args) {
				moduleValues = append(moduleValues, args[i+1])
				i++
			}
		default:
			kept = append(kept, args[i])
		}
	}
	return kept, moduleValues
}

// gameTemplate returns the game argument template: the modern token list,
// the legacy single-string form, or the fixed fallback for descriptors
// carrying neither.
func (a *Assembler) gameTemplate(merged *domain.VersionDescriptor, lc domain.LaunchContext) []string {
	if merged.Arguments != nil && len(merged.Arguments.Game) > 0 {
		return expandTokens(merged.Arguments.Game, a.platform, lc.Features)
	}
	if merged.MinecraftArguments != "" {
		return strings.Fields(merged.MinecraftArguments)
	}
	return []string{
		"--username", "${auth_player_name}",
		"--version", "${version_name}",
		"--gameDir", "${game_directory}",
		"--assetsDir", "${assets_root}",
		"--assetIndex", "${assets_index_name}",
		"--uuid", "${auth_uuid}",
		"--accessToken", "${auth_access_token}",
		"--userType", "${user_type}",
		"--versionType", "${version_type}",
	}
}

func argTokens(merged *domain.VersionDescriptor) domain.Arguments {
	if merged.Arguments == nil {
		return domain.Arguments{}
	}
	return *merged.Arguments
}

func substituteAll(args []string, table map[string]string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = substitute(arg, table)
	}
	return out
}
