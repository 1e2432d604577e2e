package zxml

import "unsafe"

// unsafeString performs a no-copy string conversion from bs. It is used
// throughout zxml to hand borrowed slices of the input buffer to callers as
// strings without an allocation, on the understanding (documented on every
// exported type that uses it) that the string is only valid as long as the
// original input buffer is alive and unmodified.
//
// https://github.com/golang/go/issues/25484 has background on this pattern;
// the implementation is the one strings.Builder itself uses internally.
func unsafeString(bs []byte) string {
	if len(bs) == 0 {
		return ""
	}
	return *(*string)(unsafe.Pointer(&bs))
}
