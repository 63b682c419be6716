package proc

import "regexp"

// timestampPrefix matches the game's native leading timestamp bracket, e.g.
// "[14:03:04.930] " or "[2024-06-01 14:03:04] ".
var timestampPrefix = regexp.MustCompile(`^\[([0-9:. \-]+)\] `)

// StripTimestamp removes a leading bracketed timestamp from a log line so
// downstream consumers see clean lines. The bracket content must contain a
// colon to qualify; anything else passes through unchanged.
func StripTimestamp(line string) string {
	m := timestampPrefix.FindStringSubmatch(line)
	if m == nil {
		return line
	}
	hasColon := false
	for i := 0; i < len(m[1]); i++ {
		if m[1][i] == ':' {
			hasColon = true
			break
		}
	}
	if !hasColon {
		return line
	}
	return line[len(m[0]):]
}
