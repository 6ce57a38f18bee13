package plan

import (
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sw33tLie/renumber/pkg/entry"
)

func mkEntries(t *testing.T, names ...string) []entry.Entry {
	t.Helper()
	p := entry.NewParser()
	var result []entry.Entry
	for _, n := range names {
		result = append(result, p.Entry(filepath.Join("dir", n)))
	}
	return result
}

func names(renames []Rename) []string {
	var result []string
	for _, r := range renames {
		result = append(result, filepath.Base(r.From)+" -> "+filepath.Base(r.To))
	}
	return result
}

func TestWidth(t *testing.T) {
	cases := map[uint64]int{
		0:              1,
		1:              1,
		9:              1,
		10:             2,
		99:             2,
		100:            3,
		999:            3,
		math.MaxUint64: 20,
	}
	for n, want := range cases {
		assert.Equal(t, want, Width(n), "Width(%d)", n)
	}
}

func TestGroupOrdering(t *testing.T) {
	ents := mkEntries(t, "c_1.txt", "c_2.txt", "a_1.txt", "a_2.txt", "b.txt")

	var got []string
	for _, g := range Group(ents) {
		for _, e := range g {
			got = append(got, fmt.Sprintf("%s(%d)", e.Name(), e.Num))
		}
	}
	assert.Equal(t, []string{"a_2.txt(2)", "a_1.txt(1)", "c_2.txt(2)", "c_1.txt(1)"}, got)
}

func TestGroupKeepsInput(t *testing.T) {
	ents := mkEntries(t, "b_1", "a_1")
	Group(ents)
	assert.Equal(t, "b_1", ents[0].Name())
}

func TestSortUnnumberedLast(t *testing.T) {
	ents := mkEntries(t, "a.txt", "a_1.txt", "a_10.txt", "a_2.txt")
	Sort(ents)

	var got []string
	for _, e := range ents {
		got = append(got, e.Name())
	}
	assert.Equal(t, []string{"a_10.txt", "a_2.txt", "a_1.txt", "a.txt"}, got)
}

func TestBuildInsertsUnnumbered(t *testing.T) {
	ents := mkEntries(t, "a.txt", "a_1.txt", "a_2.txt", "c.txt", "d")

	got := Build(ents, Options{})
	assert.Equal(t, []string{
		"a_2.txt -> a_3.txt",
		"a_1.txt -> a_2.txt",
		"a.txt -> a_1.txt",
	}, names(got))

	for _, r := range got {
		assert.Equal(t, "dir", filepath.Dir(r.To))
	}
}

func TestBuildWidthGrowsAtBoundary(t *testing.T) {
	ents := mkEntries(t, "img-1.png", "img-9.png", "img.png")

	got := Build(ents, Options{})
	assert.Equal(t, []string{
		"img-9.png -> img-10.png",
		"img-1.png -> img-02.png",
		"img.png -> img-01.png",
	}, names(got))
}

func TestBuildWidthFromShiftedMax(t *testing.T) {
	ents := mkEntries(t, "p_001", "p_002")

	assert.Equal(t, []string{"p_002 -> p_3", "p_001 -> p_2"}, names(Build(ents, Options{})))
	assert.Equal(t, []string{"p_002 -> p_003", "p_001 -> p_002"}, names(Build(ents, Options{PreservePadding: true})))
	assert.Equal(t, []string{"p_002 -> p_0003", "p_001 -> p_0002"}, names(Build(ents, Options{MinWidth: 4})))
}

func TestBuildGroupsIndependent(t *testing.T) {
	ents := mkEntries(t, "x_9.txt", "y_1.txt", "y.txt", "z.txt")

	got := Build(ents, Options{})
	assert.Equal(t, []string{
		"x_9.txt -> x_10.txt",
		"y_1.txt -> y_2.txt",
		"y.txt -> y_1.txt",
	}, names(got))
}

func TestBuildNoSeparator(t *testing.T) {
	// Without a separator there is nowhere to insert the unnumbered file.
	ents := mkEntries(t, "page1", "page2", "page")

	got := Build(ents, Options{})
	assert.Equal(t, []string{"page2 -> page3", "page1 -> page2"}, names(got))
}

func TestBuildSeparatorFromFirstNumbered(t *testing.T) {
	ents := mkEntries(t, "v-3", "v_1", "v")

	got := Build(ents, Options{})
	assert.Equal(t, []string{"v-3 -> v-4", "v_1 -> v_2", "v -> v-1"}, names(got))
}

func TestBuildNothingNumbered(t *testing.T) {
	ents := mkEntries(t, "b.txt", "c.txt", "001")
	assert.Empty(t, Build(ents, Options{}))
}

func TestBuildShiftInvariant(t *testing.T) {
	p := entry.NewParser()
	ents := mkEntries(t, "s_0", "s_3", "s_7", "s_12", "s_99")

	got := Build(ents, Options{})
	require.Len(t, got, len(ents))

	width := -1
	for _, r := range got {
		from := p.Entry(r.From)
		to := p.Entry(r.To)
		require.True(t, to.HasNum)
		assert.Equal(t, from.Num+1, to.Num)
		assert.Equal(t, from.GroupKey(), to.GroupKey())
		if width < 0 {
			width = to.Digits
		}
		assert.Equal(t, width, to.Digits, r.To)
	}
	assert.Equal(t, 3, width)
}

func TestBuildMaxUint64Untouched(t *testing.T) {
	ents := mkEntries(t, "m_18446744073709551615", "m_1")

	got := Build(ents, Options{})
	assert.Equal(t, []string{"m_1 -> m_00000000000000000002"}, names(got))
}

func TestBuildIsVerifiable(t *testing.T) {
	ents := mkEntries(t, "a.txt", "a_1.txt", "a_2.txt", "a_3.txt", "b_1", "b")

	var existing []string
	for _, e := range ents {
		existing = append(existing, e.Path)
	}
	require.NoError(t, Verify(Build(ents, Options{}), existing))
}
