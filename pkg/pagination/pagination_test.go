package pagination

import (
	"strconv"
	"testing"

	"videotube/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	p, err := Parse("", "")
	require.NoError(t, err)
	assert.Equal(t, Params{Page: 1, Limit: 10}, p)
	assert.Equal(t, 0, p.Offset())
}

func TestParse_Explicit(t *testing.T) {
	p, err := Parse("3", "25")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, 50, p.Offset())
}

func TestParse_ClampsLimit(t *testing.T) {
	p, err := Parse("1", "5000")
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, p.Limit)
}

func TestParse_Invalid(t *testing.T) {
	for _, tc := range []struct{ page, limit string }{
		{"0", ""},
		{"-1", ""},
		{"abc", ""},
		{"", "0"},
		{"", "ten"},
	} {
		_, err := Parse(tc.page, tc.limit)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "page=%q limit=%q", tc.page, tc.limit)
	}
}

func TestParse_RejectsPageThatWouldOverflowOffset(t *testing.T) {
	_, err := Parse(strconv.Itoa(1<<62), "100")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	p, err := Parse(strconv.Itoa(MaxPage), "100")
	require.NoError(t, err)
	assert.Equal(t, (MaxPage-1)*MaxLimit, p.Offset())
	assert.Positive(t, p.Offset())

	huge := Params{Page: 1 << 62, Limit: MaxLimit}.Normalize()
	assert.Equal(t, MaxPage, huge.Page)
	assert.GreaterOrEqual(t, huge.Offset(), 0)
}

func TestNewPage_BoundaryOfTen(t *testing.T) {
	items := make([]int, 10)

	first := NewPage(items, Params{Page: 1, Limit: 10}, 10)
	assert.Len(t, first.Items, 10)
	assert.Equal(t, 1, first.TotalPages)

	second := NewPage[int](nil, Params{Page: 2, Limit: 10}, 10)
	assert.NotNil(t, second.Items)
	assert.Empty(t, second.Items)
	assert.Equal(t, int64(10), second.TotalItems)
	assert.Equal(t, 1, second.TotalPages)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 3, TotalPages(21, 10))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, Params{Page: 1, Limit: 10}, Params{}.Normalize())
	assert.Equal(t, Params{Page: 2, Limit: 100}, Params{Page: 2, Limit: 1000}.Normalize())
}
