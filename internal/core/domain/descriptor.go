package domain

import (
	"encoding/json"

	"go.trai.ch/zerr"
)

// AssetIndexRef points at a version's asset index document.
type AssetIndexRef struct {
	ID        string `json:"id"`
	URL       string `json:"url,omitempty"`
	SHA1      string `json:"sha1,omitempty"`
	Size      int64  `json:"size,omitempty"`
	TotalSize int64  `json:"totalSize,omitempty"`
}

// VersionDownloads holds the primary client (and optionally server) artifacts.
type VersionDownloads struct {
	Client *ArtifactRef `json:"client,omitempty"`
	Server *ArtifactRef `json:"server,omitempty"`
}

// JavaVersion names the Java runtime a version requires.
type JavaVersion struct {
	Component    string `json:"component,omitempty"`
	MajorVersion int    `json:"majorVersion"`
}

// VersionDescriptor is the on-disk description of one launchable version.
// Descriptors are written once by an installer and read-only thereafter; a
// loader descriptor augments its engine parent via InheritsFrom rather than
// restating unchanged fields.
type VersionDescriptor struct {
	ID           string `json:"id"`
	InheritsFrom string `json:"inheritsFrom,omitempty"`
	MainClass    string `json:"mainClass,omitempty"`
	Type         string `json:"type,omitempty"`

	Libraries []Library  `json:"libraries,omitempty"`
	Arguments *Arguments `json:"arguments,omitempty"`
	// MinecraftArguments is the legacy single-string game argument template
	// used by pre-1.13 descriptors.
	MinecraftArguments string `json:"minecraftArguments,omitempty"`

	AssetIndex  *AssetIndexRef    `json:"assetIndex,omitempty"`
	Assets      string            `json:"assets,omitempty"`
	Downloads   *VersionDownloads `json:"downloads,omitempty"`
	JavaVersion *JavaVersion      `json:"javaVersion,omitempty"`

	ReleaseTime string `json:"releaseTime,omitempty"`
	Time        string `json:"time,omitempty"`

	// Extra preserves vendor fields this schema does not model, so merging
	// and re-serializing a descriptor never drops unknown keys.
	Extra map[string]json.RawMessage `json:"-"`
}

// knownDescriptorKeys are the top-level keys decoded into typed fields.
var knownDescriptorKeys = map[string]bool{
	"id": true, "inheritsFrom": true, "mainClass": true, "type": true,
	"libraries": true, "arguments": true, "minecraftArguments": true,
	"assetIndex": true, "assets": true, "downloads": true,
	"javaVersion": true, "releaseTime": true, "time": true,
}

type versionDescriptorAlias VersionDescriptor

// UnmarshalJSON decodes the known fields and stashes everything else in Extra.
func (d *VersionDescriptor) UnmarshalJSON(data []byte) error {
	var alias versionDescriptorAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return zerr.Wrap(err, "failed to decode version descriptor")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return zerr.Wrap(err, "failed to decode version descriptor")
	}
	for key := range raw {
		if knownDescriptorKeys[key] {
			delete(raw, key)
		}
	}
	if len(raw) > 0 {
		alias.Extra = raw
	}

	*d = VersionDescriptor(alias)
	return nil
}

// MarshalJSON writes the typed fields and folds Extra back in.
func (d VersionDescriptor) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(versionDescriptorAlias(d))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode version descriptor")
	}
	if len(d.Extra) == 0 {
		return data, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, zerr.Wrap(err, "failed to re-encode version descriptor")
	}
	for key, value := range d.Extra {
		if _, ok := merged[key]; !ok {
			merged[key] = value
		}
	}
	return json.Marshal(merged)
}
