package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelValues(t *testing.T) {
	a := NewAssigner()
	cases := []struct {
		i    int
		want string
	}{
		{0, "00000"},
		{1, "00001"},
		{9, "00009"},
		{10, "0000A"},
		{35, "0000Z"},
		{36, "00010"},
		{36*36 - 1, "000ZZ"},
		{36 * 36, "00100"},
	}
	for _, tc := range cases {
		got, err := a.Label(tc.i)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "index %d", tc.i)
	}
}

func TestLabelInjectiveConstantWidth(t *testing.T) {
	a := &Assigner{Width: 3}
	seen := make(map[string]bool)
	for i := 0; i < a.Capacity(); i += 7 {
		l, err := a.Label(i)
		require.NoError(t, err)
		require.Len(t, l, 3)
		require.False(t, seen[l], "duplicate label %q at index %d", l, i)
		seen[l] = true
	}
}

func TestLabelOverflow(t *testing.T) {
	a := &Assigner{Width: 1}
	assert.Equal(t, 36, a.Capacity())

	_, err := a.Label(35)
	assert.NoError(t, err)

	_, err = a.Label(36)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = a.Label(-1)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = a.Labels(37)
	assert.ErrorIs(t, err, ErrOverflow)

	got, err := a.Labels(36)
	require.NoError(t, err)
	assert.Len(t, got, 36)
}

func TestParseRoundTrip(t *testing.T) {
	a := NewAssigner()
	for _, i := range []int{0, 1, 35, 36, 1295, 46655, 46656, 999999} {
		l, err := a.Label(i)
		require.NoError(t, err)
		back, err := a.Parse(l)
		require.NoError(t, err)
		assert.Equal(t, i, back)
	}

	_, err := a.Parse("ABC")
	assert.Error(t, err, "wrong width")
	_, err = a.Parse("AB CD")
	assert.Error(t, err, "invalid character")
}
