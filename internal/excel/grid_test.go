package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMerges_FillsVerticalRegion(t *testing.T) {
	g := Grid{
		{"h0", "h1"},
		{"", ""},
		{"x", "A"},
		{"y"},
		{"z", ""},
	}

	out := ResolveMerges(g, []MergeRegion{{StartRow: 2, StartCol: 1, EndRow: 4, EndCol: 1}})

	require.Len(t, out, 5)
	assert.Equal(t, "A", out[3][1])
	assert.Equal(t, "A", out[4][1])
	assert.Equal(t, "", out[1][1])
	for _, r := range out {
		assert.Len(t, r, 2)
	}
}

func TestResolveMerges_KeepsExplicitValues(t *testing.T) {
	g := Grid{{"A", "B"}, {"", "C"}}

	out := ResolveMerges(g, []MergeRegion{{StartRow: 0, StartCol: 0, EndRow: 1, EndCol: 1}})

	assert.Equal(t, Grid{{"A", "B"}, {"A", "C"}}, out)
}

func TestResolveMerges_EmptySeedLeavesRegionBlank(t *testing.T) {
	g := Grid{{"", ""}, {"", ""}}

	out := ResolveMerges(g, []MergeRegion{{StartRow: 0, StartCol: 0, EndRow: 1, EndCol: 1}})

	assert.Equal(t, Grid{{"", ""}, {"", ""}}, out)
}

func TestResolveMerges_DoesNotMutateInput(t *testing.T) {
	g := Grid{{"A"}, {""}}

	_ = ResolveMerges(g, []MergeRegion{{StartRow: 0, StartCol: 0, EndRow: 1, EndCol: 0}})

	assert.Equal(t, "", g[1][0])
}

func TestFindHeaderRow(t *testing.T) {
	g := Grid{{"title"}, {"품목(규격)", "입고"}, {"품목(규격)", "입고", "출고"}}

	assert.Equal(t, 2, FindHeaderRow(g, "품목(규격)", "입고", "출고"))
	assert.Equal(t, -1, FindHeaderRow(g, "없음"))
}
