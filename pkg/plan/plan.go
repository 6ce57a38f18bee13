// Package plan computes the renames that shift every numbered file of a
// group up by one and slot the group's unnumbered file in at number 1.
package plan

import (
	"cmp"
	"fmt"
	"math"
	"path/filepath"
	"slices"

	"github.com/sw33tLie/renumber/pkg/entry"
)

// Rename is a single from/to pair. Both are full paths.
type Rename struct {
	From string
	To   string
}

// Options tunes the padding width. The zero value reproduces the automatic
// width: the digit count of the largest shifted number in the group.
type Options struct {
	// MinWidth is a floor for the padding width.
	MinWidth int
	// PreservePadding keeps the widest original digit run of the group.
	PreservePadding bool
}

// Sort orders entries by group key ascending, then number descending with
// unnumbered entries last. The sort is stable.
func Sort(entries []entry.Entry) {
	slices.SortStableFunc(entries, compare)
}

func compare(a, b entry.Entry) int {
	if c := cmp.Compare(a.GroupKey(), b.GroupKey()); c != 0 {
		return c
	}
	switch {
	case a.HasNum && b.HasNum:
		return cmp.Compare(b.Num, a.Num)
	case a.HasNum:
		return -1
	case b.HasNum:
		return 1
	}
	return 0
}

// Group sorts entries and splits them into runs sharing a group key. Groups
// without any numbered member are dropped.
func Group(entries []entry.Entry) [][]entry.Entry {
	sorted := slices.Clone(entries)
	Sort(sorted)

	var groups [][]entry.Entry
	for start := 0; start < len(sorted); {
		end := start + 1
		for end < len(sorted) && sorted[end].GroupKey() == sorted[start].GroupKey() {
			end++
		}
		g := sorted[start:end:end]
		if slices.ContainsFunc(g, func(e entry.Entry) bool { return e.HasNum }) {
			groups = append(groups, g)
		}
		start = end
	}
	return groups
}

// Build returns the renames for entries in execution order: group by group,
// highest number first and the unnumbered entry last, so that every target
// has already been vacated when executed sequentially.
func Build(entries []entry.Entry, opts Options) []Rename {
	var renames []Rename
	for _, g := range Group(entries) {
		renames = append(renames, buildGroup(g, opts)...)
	}
	return renames
}

func buildGroup(g []entry.Entry, opts Options) []Rename {
	var (
		maxNum   uint64
		sep      string
		sepFound bool
		digits   int
	)
	for _, e := range g {
		if !e.HasNum {
			continue
		}
		maxNum = max(maxNum, e.Num)
		digits = max(digits, e.Digits)
		if !sepFound {
			sep, sepFound = e.Separator(), true
		}
	}

	shifted := maxNum
	if shifted < math.MaxUint64 {
		shifted++
	}
	w := max(Width(shifted), opts.MinWidth)
	if opts.PreservePadding {
		w = max(w, digits)
	}

	renames := make([]Rename, 0, len(g))
	for _, e := range g {
		var name string
		switch {
		case e.HasNum && e.Num == math.MaxUint64:
			// no room to shift
			continue
		case e.HasNum:
			name = fmt.Sprintf("%s%0*d%s", e.Base, w, e.Num+1, e.Ext)
		case sep != "":
			name = fmt.Sprintf("%s%s%0*d%s", e.Base, sep, w, 1, e.Ext)
		default:
			continue
		}
		to := filepath.Join(filepath.Dir(e.Path), name)
		if to == e.Path {
			continue
		}
		renames = append(renames, Rename{From: e.Path, To: to})
	}
	return renames
}

// Width returns the number of decimal digits in n. Width(0) is 1.
func Width(n uint64) int {
	w := 1
	for n >= 10 {
		n /= 10
		w++
	}
	return w
}
