package geomap

import "unicode"

// Match reports whether pattern occurs as an ordered subsequence of text,
// case-insensitively. An empty pattern matches everything. Each pattern
// rune is searched for strictly forward of the previous match, so the
// scan never backtracks. No scoring, no match positions, just a
// predicate.
func Match(pattern, text string) bool {
	if pattern == "" {
		return true
	}

	tr := []rune(text)
	ti := 0
	for _, pr := range pattern {
		pr = unicode.ToLower(pr)
		found := false
		for ti < len(tr) {
			t := unicode.ToLower(tr[ti])
			ti++
			if t == pr {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
