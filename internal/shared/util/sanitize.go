package util

import (
	"strings"
)

// SanitizeFileName strips directory components and control characters from a client
// supplied name so it can be logged safely. It returns "" when nothing usable remains.
func SanitizeFileName(name string) string {
	s := strings.ReplaceAll(name, "\\", "/")
	if idx := strings.LastIndex(s, "/"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
