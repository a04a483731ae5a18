package catalog

import (
	"strconv"
	"strings"
)

// Ordinal helpers. An ordinal is a dot-separated sequence of non-negative
// integers ("2.1.3" is the 3rd child of the 1st child of section 2). All
// functions here are pure; none consult storage. Existence of a derived
// ordinal is always decided by a store lookup, never by arithmetic validity.

// Segments parses the ordinal into its integer path. Every segment must be a
// non-negative integer literal without sign or leading whitespace.
func Segments(ordinal string) ([]int, error) {
	parts := strings.Split(ordinal, ".")
	segments := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 31)
		if err != nil {
			return nil, &InvalidOrdinalError{Ordinal: ordinal}
		}
		segments[i] = int(n)
	}
	return segments, nil
}

// Ancestor returns the leading segment as an integer. It identifies the
// top-level section the ordinal belongs to.
func Ancestor(ordinal string) (int, error) {
	first, _, _ := strings.Cut(ordinal, ".")
	n, err := strconv.ParseUint(first, 10, 31)
	if err != nil {
		return 0, &InvalidOrdinalError{Ordinal: ordinal}
	}
	return int(n), nil
}

// Parent returns the ordinal with its final segment removed. The boolean is
// false when the ordinal has a single segment, i.e. the record is a section.
func Parent(ordinal string) (string, bool) {
	idx := strings.LastIndex(ordinal, ".")
	if idx < 0 {
		return "", false
	}
	return ordinal[:idx], true
}

// Sibling replaces the final segment with its value shifted by delta. The
// preceding segments are carried over unchanged and no bounds check is
// applied: Sibling("1.0", -1) yields "1.-1", a well-formed key that simply
// never matches a stored record.
func Sibling(ordinal string, delta int) (string, error) {
	idx := strings.LastIndex(ordinal, ".")
	last := ordinal[idx+1:]
	n, err := strconv.ParseUint(last, 10, 31)
	if err != nil {
		return "", &InvalidOrdinalError{Ordinal: ordinal}
	}
	if idx < 0 {
		return strconv.Itoa(int(n) + delta), nil
	}
	return ordinal[:idx+1] + strconv.Itoa(int(n)+delta), nil
}

// Compare orders two ordinals numerically per segment, so "1.10" sorts after
// "1.2". A shorter ordinal that prefixes a longer one sorts first. Segments
// that fail to parse fall back to byte-wise comparison so the ordering stays
// total even over malformed keys.
func Compare(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] == bs[i] {
			continue
		}
		an, aerr := strconv.ParseUint(as[i], 10, 31)
		bn, berr := strconv.ParseUint(bs[i], 10, 31)
		if aerr != nil || berr != nil {
			return strings.Compare(as[i], bs[i])
		}
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}
