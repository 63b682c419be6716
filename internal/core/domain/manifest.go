package domain

// VersionManifest is the engine's published list of installable versions.
type VersionManifest struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []ManifestEntry `json:"versions"`
}

// ManifestEntry is one version listed by the manifest.
type ManifestEntry struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	ReleaseTime string `json:"releaseTime,omitempty"`
	SHA1        string `json:"sha1,omitempty"`
}

// Find returns the manifest entry with the given id.
func (m VersionManifest) Find(id string) (ManifestEntry, bool) {
	for _, v := range m.Versions {
		if v.ID == id {
			return v, true
		}
	}
	return ManifestEntry{}, false
}

// AssetIndex maps logical asset names to content-addressed objects.
type AssetIndex struct {
	Objects map[string]AssetObject `json:"objects"`
}

// AssetObject is one content-addressed asset blob. Objects are stored under
// a two-character hash-prefix shard: objects/<hash[:2]>/<hash>.
type AssetObject struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// ShardPath returns the object's sharded relative path.
func (o AssetObject) ShardPath() string {
	return o.Hash[:2] + "/" + o.Hash
}
