package domain

import "runtime"

// Platform describes the host the launcher is provisioning for. It is built
// once at startup and injected, so rule evaluation and path handling stay
// testable for every OS from a single build.
type Platform struct {
	// OS is the descriptor-schema OS key: "windows", "osx" or "linux".
	OS string
	// Arch is the descriptor-schema architecture key, e.g. "x86" or "arm64".
	Arch string
	// PathSeparator separates path elements ("\\" on Windows, "/" elsewhere).
	PathSeparator string
	// ClasspathSeparator joins classpath entries (";" on Windows, ":" elsewhere).
	ClasspathSeparator string
	// ExeSuffix is appended to executable names (".exe" on Windows).
	ExeSuffix string
	// CaseInsensitiveFS reports whether paths compare case-insensitively.
	CaseInsensitiveFS bool
}

// CurrentPlatform returns the Platform for the running host.
func CurrentPlatform() Platform {
	p := Platform{
		OS:                 runtime.GOOS,
		Arch:               runtime.GOARCH,
		PathSeparator:      "/",
		ClasspathSeparator: ":",
	}

	switch runtime.GOOS {
	case "windows":
		p.PathSeparator = "\\"
		p.ClasspathSeparator = ";"
		p.ExeSuffix = ".exe"
		p.CaseInsensitiveFS = true
	case "darwin":
		// The descriptor schema predates the darwin name.
		p.OS = "osx"
		p.CaseInsensitiveFS = true
	}

	switch runtime.GOARCH {
	case "386":
		p.Arch = "x86"
	case "amd64":
		p.Arch = "x86_64"
	}

	return p
}

// NativeClassifier returns the natives classifier key for this platform,
// e.g. "natives-linux". The schema uses "osx" for macOS.
func (p Platform) NativeClassifier() string {
	return "natives-" + p.OS
}
