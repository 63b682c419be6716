package domain

import "path/filepath"

// DownloadTask describes one artifact to fetch. Tasks are constructed per
// required artifact, consumed exactly once by the download manager, and
// discarded after success.
type DownloadTask struct {
	URL  string
	Path string
	// Size is the expected byte size, used to validate an existing file when
	// no digest is known. Zero means unknown.
	Size int64
	// SHA1 and SHA512 are optional hex digests; when both are set, SHA512
	// wins for validation.
	SHA1   string
	SHA512 string
}

// FileName returns the base name of the destination, for progress display.
func (t DownloadTask) FileName() string {
	return filepath.Base(t.Path)
}
