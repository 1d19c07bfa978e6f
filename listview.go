package geomap

// ListView tracks a filtered, scrollable selection over a source slice.
// it owns only indices: matches is an order-preserving subsequence of
// [0, sourceLen), selection points into matches, and scroll is the first
// visible position. the caller re-runs Sync when the pattern may have
// changed and Scroll once per frame with the current viewport height.
type ListView struct {
	matches     []int
	selection   int
	scroll      int
	lastPattern string
	synced      bool
}

// Sync recomputes the match set if the pattern changed since the last
// call, or unconditionally when force is set (used when entering or
// leaving filter mode). text(i) returns the searchable string for source
// index i. An empty pattern keeps every index in original order. After
// recomputation the selection is clamped into the new match set.
func (v *ListView) Sync(sourceLen int, pattern string, force bool, text func(int) string) {
	if v.synced && !force && pattern == v.lastPattern {
		return
	}
	v.lastPattern = pattern
	v.synced = true

	v.matches = v.matches[:0]
	for i := 0; i < sourceLen; i++ {
		if pattern == "" || Match(pattern, text(i)) {
			v.matches = append(v.matches, i)
		}
	}
	v.clampSelection()
}

func (v *ListView) clampSelection() {
	if len(v.matches) == 0 {
		v.selection = 0
		return
	}
	if v.selection >= len(v.matches) {
		v.selection = len(v.matches) - 1
	}
	if v.selection < 0 {
		v.selection = 0
	}
}

// Scroll re-derives the scroll offset from the selection and viewport
// height. The rules run in this order on purpose: the fits-entirely and
// last-page clamps override the keep-in-view adjustments for degenerate
// viewport sizes.
func (v *ListView) Scroll(height int) {
	if v.selection >= v.scroll+height && height > 0 {
		v.scroll = v.selection - height + 1
	}
	if v.selection < v.scroll {
		v.scroll = v.selection
	}
	if len(v.matches) <= height {
		v.scroll = 0
	} else if v.scroll > len(v.matches)-height {
		v.scroll = len(v.matches) - height
	}
}

// MoveUp moves the selection up one row. never wraps.
func (v *ListView) MoveUp() {
	if v.selection > 0 {
		v.selection--
	}
}

// MoveDown moves the selection down one row. never wraps.
func (v *ListView) MoveDown() {
	if v.selection+1 < len(v.matches) {
		v.selection++
	}
}

// Len returns the number of matched rows.
func (v *ListView) Len() int {
	return len(v.matches)
}

// Empty reports whether nothing matches the current pattern.
func (v *ListView) Empty() bool {
	return len(v.matches) == 0
}

// Selection returns the selected position within the matched rows.
// 0 when the match set is empty.
func (v *ListView) Selection() int {
	return v.selection
}

// Offset returns the scroll offset within the matched rows.
func (v *ListView) Offset() int {
	return v.scroll
}

// At maps a matched position back to its source index.
// returns -1 if out of bounds.
func (v *ListView) At(pos int) int {
	if pos < 0 || pos >= len(v.matches) {
		return -1
	}
	return v.matches[pos]
}

// Current returns the source index of the selected row, or -1 when the
// match set is empty.
func (v *ListView) Current() int {
	if len(v.matches) == 0 {
		return -1
	}
	return v.matches[v.selection]
}

// Matches returns the matched source indices. The slice is owned by the
// view and only valid until the next Sync.
func (v *ListView) Matches() []int {
	return v.matches
}
