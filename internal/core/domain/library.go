package domain

// ArtifactRef points at a single downloadable artifact.
type ArtifactRef struct {
	Path string `json:"path,omitempty"`
	URL  string `json:"url,omitempty"`
	SHA1 string `json:"sha1,omitempty"`
	Size int64  `json:"size,omitempty"`
}

// LibraryDownloads holds the direct artifact and any platform-classified
// native jars of a library.
type LibraryDownloads struct {
	Artifact    *ArtifactRef           `json:"artifact,omitempty"`
	Classifiers map[string]ArtifactRef `json:"classifiers,omitempty"`
}

// Extract controls native jar unpacking.
type Extract struct {
	// Exclude lists path prefixes that must not be unpacked.
	Exclude []string `json:"exclude,omitempty"`
}

// Library is one classpath or native dependency of a version descriptor.
type Library struct {
	// Name is the maven coordinate, e.g. "org.lwjgl:lwjgl:3.3.3".
	Name      string            `json:"name"`
	URL       string            `json:"url,omitempty"`
	Downloads *LibraryDownloads `json:"downloads,omitempty"`
	// Natives maps an OS key to the classifier key holding its native jar.
	// The classifier value may contain the "${arch}" placeholder.
	Natives map[string]string `json:"natives,omitempty"`
	Extract *Extract          `json:"extract,omitempty"`
	Rules   []Rule            `json:"rules,omitempty"`
	SHA1    string            `json:"sha1,omitempty"`
	Size    int64             `json:"size,omitempty"`
}

// Artifact returns the library's direct artifact reference, if any.
func (l Library) Artifact() *ArtifactRef {
	if l.Downloads == nil {
		return nil
	}
	return l.Downloads.Artifact
}

// NativeArtifact resolves the native jar for the given platform, if the
// library declares one. It follows the natives map to the matching
// classifier entry.
func (l Library) NativeArtifact(p Platform) *ArtifactRef {
	if l.Downloads == nil || len(l.Downloads.Classifiers) == 0 {
		return nil
	}

	key := ""
	if len(l.Natives) > 0 {
		k, ok := l.Natives[p.OS]
		if !ok {
			return nil
		}
		key = expandArch(k, p)
	} else {
		key = p.NativeClassifier()
	}

	ref, ok := l.Downloads.Classifiers[key]
	if !ok {
		return nil
	}
	return &ref
}

func expandArch(classifier string, p Platform) string {
	bits := "64"
	if p.Arch == "x86" {
		bits = "32"
	}
	out := make([]byte, 0, len(classifier))
	for i := 0; i < len(classifier); {
		if i+7 <= len(classifier) && classifier[i:i+7] == "${arch}" {
			out = append(out, bits...)
			i += 7
			continue
		}
		out = append(out, classifier[i])
		i++
	}
	return string(out)
}
