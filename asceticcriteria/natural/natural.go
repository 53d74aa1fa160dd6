// Package natural orders strings so that embedded digit runs compare by
// magnitude: "item2" sorts before "item10".
package natural

import (
	"slices"
	"unicode"
)

// Compare returns -1, 0 or +1 depending on whether a sorts before, together
// with, or after b in natural order.
//
// Letters compare case-insensitively. An empty string sorts before any
// non-empty one, and a string that starts with a letter or digit sorts after
// one that does not.
func Compare(a, b string) int {
	if a == "" || b == "" {
		return compareEmpty(a, b)
	}
	x := []rune(a)
	y := []rune(b)

	xLead := isLetterOrDigit(x[0])
	yLead := isLetterOrDigit(y[0])
	if xLead && !yLead {
		return 1
	}
	if !xLead && yLead {
		return -1
	}

	i, j := 0, 0
	for i < len(x) && j < len(y) {
		if isDigit(x[i]) && isDigit(y[j]) {
			ie := digitRunEnd(x, i)
			je := digitRunEnd(y, j)
			if r := compareDigitRuns(x[i:ie], y[j:je]); r != 0 {
				return r
			}
			i, j = ie, je
			continue
		}
		if r := compareRunes(x[i], y[j]); r != 0 {
			return r
		}
		i++
		j++
	}

	switch {
	case i < len(x):
		return 1
	case j < len(y):
		return -1
	}
	return 0
}

// ComparePtr is Compare with nil standing for a missing value. Two nils are
// equal and a nil sorts before everything else, the empty string included.
func ComparePtr(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return Compare(*a, *b)
}

func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Sort orders s in place.
func Sort(s []string) {
	slices.SortStableFunc(s, Compare)
}

func compareEmpty(a, b string) int {
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	}
	return 1
}

func compareDigitRuns(x, y []rune) int {
	xs := stripZeros(x)
	ys := stripZeros(y)
	if len(xs) != len(ys) {
		if len(xs) < len(ys) {
			return -1
		}
		return 1
	}
	for k := range xs {
		if xs[k] != ys[k] {
			if xs[k] < ys[k] {
				return -1
			}
			return 1
		}
	}
	// Same magnitude: the more zero-padded run is lesser.
	switch {
	case len(x) > len(y):
		return -1
	case len(x) < len(y):
		return 1
	}
	return 0
}

func compareRunes(cx, cy rune) int {
	xLetter := unicode.IsLetter(cx)
	yLetter := unicode.IsLetter(cy)
	switch {
	case xLetter && yLetter:
		cx = unicode.ToLower(cx)
		cy = unicode.ToLower(cy)
	case xLetter:
		return 1
	case yLetter:
		return -1
	}
	switch {
	case cx < cy:
		return -1
	case cx > cy:
		return 1
	}
	return 0
}

func digitRunEnd(s []rune, from int) int {
	for from < len(s) && isDigit(s[from]) {
		from++
	}
	return from
}

func stripZeros(run []rune) []rune {
	k := 0
	for k < len(run) && run[k] == '0' {
		k++
	}
	return run[k:]
}

// isDigit accepts ASCII digits only. Other decimal digits compare as symbols.
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isLetterOrDigit(r rune) bool {
	return unicode.IsLetter(r) || isDigit(r)
}
