package utils

import "strings"

// StripTrailingSpaces removes the space padding that six-bit ASCII text
// fields carry on the wire.
func StripTrailingSpaces(s string) string {
	return strings.TrimRight(s, " ")
}
