package stream

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// ReadNullTerminatedString reads exactly n bytes from r, truncates at the
// first NUL byte (falling back to the full n bytes if none is present),
// validates the result as UTF-8, and returns it.
func ReadNullTerminatedString(r io.Reader, n int) (string, error) {
	buf := make([]byte, n)
	if err := ReadExactly(r, buf); err != nil {
		return "", err
	}
	return StringFromNullTerminatedBytes(buf)
}

// StringFromNullTerminatedBytes truncates buffer at its first NUL byte (or
// uses all of it if there is none) and validates the result as UTF-8.
func StringFromNullTerminatedBytes(buffer []byte) (string, error) {
	end := len(buffer)
	for i, b := range buffer {
		if b == 0 {
			end = i
			break
		}
	}
	if !utf8.Valid(buffer[:end]) {
		return "", fmt.Errorf("null-terminated field is not valid UTF-8")
	}
	return string(buffer[:end]), nil
}
