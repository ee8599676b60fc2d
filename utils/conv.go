package utils

import (
	"bytes"
)

// BytesToString decodes a fixed-size NUL-padded name field into a string,
// dropping everything from the first NUL byte onward. Archive names are
// plain upper-case ASCII.
func BytesToString(bs []byte) string {
	n := bytes.IndexByte(bs, 0)
	if n < 0 {
		n = len(bs)
	}
	return string(bs[:n])
}

// BytesStringLength returns the decoded length of a NUL-padded name field.
func BytesStringLength(bs []byte) int {
	if l := bytes.IndexByte(bs, 0); l != -1 {
		return l
	}
	return len(bs)
}

// StringToBytesBuffer encodes s into a NUL-padded buffer of bufSize bytes.
// Panics if s does not fit; name fields have fixed wire sizes.
func StringToBytesBuffer(s string, bufSize int) []byte {
	if len(s) > bufSize {
		panic(s)
	}
	r := make([]byte, bufSize)
	copy(r, s)
	return r
}
