package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate_Invariant(t *testing.T) {
	items := make([]int, 12)
	for i := range items {
		items[i] = i
	}

	cases := []struct {
		skip, limit int
	}{
		{0, 5}, {5, 5}, {10, 5}, {12, 5}, {20, 5}, {0, 50}, {3, 1},
	}

	for _, tc := range cases {
		page, info := Paginate(items, tc.skip, tc.limit)

		// min(limit, max(0, total-skip))
		want := len(items) - tc.skip
		if want < 0 {
			want = 0
		}
		if want > tc.limit {
			want = tc.limit
		}
		assert.Len(t, page, want, "skip=%d limit=%d", tc.skip, tc.limit)
		assert.Equal(t, tc.skip+tc.limit < len(items), info.HasNext, "skip=%d limit=%d", tc.skip, tc.limit)
		assert.Equal(t, tc.skip > 0, info.HasPrev, "skip=%d limit=%d", tc.skip, tc.limit)
	}
}

func TestPaginate_PageNumbering(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	page, info := Paginate(items, 0, 2)
	assert.Equal(t, []string{"a", "b"}, page)
	assert.Equal(t, 1, info.Page)

	page, info = Paginate(items, 4, 2)
	assert.Equal(t, []string{"e"}, page)
	assert.Equal(t, 3, info.Page)
	assert.False(t, info.HasNext)
	assert.True(t, info.HasPrev)
}

func TestClampPage(t *testing.T) {
	skip, limit := ClampPage(-1, 0)
	assert.Equal(t, 0, skip)
	assert.Equal(t, DefaultPageSize, limit)

	_, limit = ClampPage(0, 9999)
	assert.Equal(t, MaxPageSize, limit)
}
