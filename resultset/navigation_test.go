package resultset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdfsql/gosparql/results"
	"github.com/rdfsql/gosparql/sparqlerr"
)

func TestAbsoluteZeroLandsBeforeFirst(t *testing.T) {
	rs := scrollable(t, []string{"n"}, intRows(3), Options{})
	mustNext(t, rs, true)
	mustNext(t, rs, true)

	ok, err := rs.Absolute(0)
	require.NoError(t, err)
	assert.True(t, ok)
	mustRow(t, rs, 0)
	before, err := rs.IsBeforeFirst()
	require.NoError(t, err)
	assert.True(t, before)
	_, err = rs.GetInt32(1)
	assert.ErrorIs(t, err, sparqlerr.ErrNotOnRow)
}

func TestAbsolute(t *testing.T) {
	testcases := []struct {
		n       int
		want    bool
		wantRow int
		wantErr bool
	}{
		{n: 1, want: true, wantRow: 1},
		{n: 2, want: true, wantRow: 2},
		{n: 3, want: true, wantRow: 3},
		{n: 4, want: false, wantRow: 4},
		{n: 100, want: false, wantRow: 4},
		{n: -1, want: true, wantRow: 3},
		{n: -3, want: true, wantRow: 1},
		{n: -4, wantErr: true, wantRow: 2},
	}
	for _, tc := range testcases {
		rs := scrollable(t, []string{"n"}, intRows(3), Options{})
		mustNext(t, rs, true)
		mustNext(t, rs, true)

		ok, err := rs.Absolute(tc.n)
		if tc.wantErr {
			assert.ErrorIs(t, err, sparqlerr.ErrIndexOutOfBounds, "absolute(%d)", tc.n)
			assert.False(t, sparqlerr.IsFeatureNotSupported(err))
		} else {
			require.NoError(t, err, "absolute(%d)", tc.n)
			assert.Equal(t, tc.want, ok, "absolute(%d)", tc.n)
		}
		mustRow(t, rs, tc.wantRow)
	}
}

func TestRelative(t *testing.T) {
	testcases := []struct {
		name    string
		from    int
		n       int
		want    bool
		wantRow int
		wantErr bool
	}{
		{name: "from before first onto a row", from: 0, n: 1, want: true, wantRow: 2},
		{name: "from before first to after last", from: 0, n: 2, want: false, wantRow: 3},
		{name: "overshoot end from before first", from: 0, n: 3, wantErr: true, wantRow: 0},
		{name: "backwards from before first", from: 0, n: -1, wantErr: true, wantRow: 0},
		{name: "onto last row", from: 1, n: 1, want: true, wantRow: 2},
		{name: "from a row to after last", from: 1, n: 2, want: false, wantRow: 3},
		{name: "overshoot end from a row", from: 1, n: 3, wantErr: true, wantRow: 1},
		{name: "back to before first", from: 2, n: -2, want: false, wantRow: 0},
		{name: "overshoot start", from: 2, n: -3, wantErr: true, wantRow: 2},
		{name: "stay", from: 1, n: 0, want: true, wantRow: 1},
		{name: "stay after last", from: 3, n: 0, want: false, wantRow: 3},
		{name: "back from after last onto a row", from: 3, n: -1, want: true, wantRow: 1},
		{name: "from after last to before first", from: 3, n: -2, want: false, wantRow: 0},
		{name: "overshoot start from after last", from: 3, n: -3, wantErr: true, wantRow: 3},
		{name: "forwards from after last", from: 3, n: 1, wantErr: true, wantRow: 3},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			rs := scrollable(t, []string{"n"}, intRows(2), Options{})
			_, err := rs.Absolute(tc.from)
			require.NoError(t, err)

			ok, err := rs.Relative(tc.n)
			if tc.wantErr {
				assert.ErrorIs(t, err, sparqlerr.ErrIndexOutOfBounds)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.want, ok)
			}
			mustRow(t, rs, tc.wantRow)
		})
	}
}

func TestFirstLastPrevious(t *testing.T) {
	rs := scrollable(t, []string{"n"}, intRows(3), Options{})

	ok, err := rs.Last()
	require.NoError(t, err)
	assert.True(t, ok)
	last, err := rs.IsLast()
	require.NoError(t, err)
	assert.True(t, last)
	n, err := rs.GetInt32(1)
	require.NoError(t, err)
	assert.Equal(t, int32(3), n)

	ok, err = rs.Previous()
	require.NoError(t, err)
	assert.True(t, ok)
	mustRow(t, rs, 2)

	ok, err = rs.First()
	require.NoError(t, err)
	assert.True(t, ok)
	first, err := rs.IsFirst()
	require.NoError(t, err)
	assert.True(t, first)

	ok, err = rs.Previous()
	require.NoError(t, err)
	assert.False(t, ok)
	mustRow(t, rs, 0)
	ok, err = rs.Previous()
	require.NoError(t, err)
	assert.False(t, ok)
	mustRow(t, rs, 0)

	require.NoError(t, rs.AfterLast())
	mustRow(t, rs, 4)
	ok, err = rs.Previous()
	require.NoError(t, err)
	assert.True(t, ok)
	mustRow(t, rs, 3)

	require.NoError(t, rs.BeforeFirst())
	mustRow(t, rs, 0)
	mustNext(t, rs, true)
	mustRow(t, rs, 1)
}

func TestEmptyScrollableResult(t *testing.T) {
	m, err := results.NewMaterialized([]string{"n"}, nil)
	require.NoError(t, err)
	rs, err := New(m, Options{})
	require.NoError(t, err)

	before, err := rs.IsBeforeFirst()
	require.NoError(t, err)
	assert.False(t, before, "an empty result has no before-first position")

	ok, err := rs.Last()
	require.NoError(t, err)
	assert.False(t, ok)
	mustRow(t, rs, 0)

	mustNext(t, rs, false)
	mustRow(t, rs, 1)
	after, err := rs.IsAfterLast()
	require.NoError(t, err)
	assert.False(t, after)

	_, err = rs.Absolute(-1)
	assert.ErrorIs(t, err, sparqlerr.ErrIndexOutOfBounds)
}
