package analytics

import (
	"strings"

	"loadboard/domain/schedule"
)

// ShortName returns a compact surname label: the text before the first comma
// ("Smith, John") or otherwise the last whitespace token ("John Smith").
func ShortName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return schedule.Unknown
	}
	if before, _, found := strings.Cut(name, ","); found {
		if surname := strings.TrimSpace(before); surname != "" {
			return surname
		}
		return schedule.Unknown
	}
	fields := strings.Fields(name)
	return fields[len(fields)-1]
}
