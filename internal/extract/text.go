package extract

import (
	"fmt"
	"unicode/utf8"
)

func extractTXT(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	pos := 0
	for pos < len(data) {
		r, size := utf8.DecodeRune(data[pos:])
		if r == utf8.RuneError && size == 1 {
			break
		}
		pos += size
	}
	return "", fmt.Errorf("invalid utf-8: can't decode byte 0x%02x in position %d", data[pos], pos)
}
