package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

// MavenPath converts a maven coordinate to its canonical relative path under
// the shared library store. Coordinates take the form
// "group:artifact:version[:classifier]" with an optional "@ext" suffix on the
// last segment overriding the default "jar" extension.
//
// Every descriptor that references the same coordinate resolves to the same
// path, so library bytes are shared across installs.
func MavenPath(coordinate string) (string, error) {
	ext := "jar"
	coord := coordinate

	if at := strings.LastIndex(coord, "@"); at >= 0 {
		ext = coord[at+1:]
		coord = coord[:at]
	}

	parts := strings.Split(coord, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return "", zerr.With(zerr.Wrap(ErrInvalidCoordinate, "malformed group:artifact:version"), "coordinate", coordinate)
	}

	group := strings.ReplaceAll(parts[0], ".", "/")
	artifact := parts[1]
	version := parts[2]

	file := fmt.Sprintf("%s-%s", artifact, version)
	if len(parts) == 4 && parts[3] != "" {
		file += "-" + parts[3]
	}
	file += "." + ext

	return fmt.Sprintf("%s/%s/%s/%s", group, artifact, version, file), nil
}
