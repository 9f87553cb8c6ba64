package edit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/oakwood/pkg/edit"
	"github.com/yaklabco/oakwood/pkg/lexer"
)

// "0123456789" -> "01abc456XY789"
func sampleChanges(t *testing.T) *edit.Changes {
	t.Helper()

	changes, err := edit.NewChanges([]edit.TextEdit{
		{Start: 7, End: 7, NewText: "XY"},
		{Start: 2, End: 4, NewText: "abc"},
	}, 10)
	require.NoError(t, err)

	return changes
}

func TestChanges_Summary(t *testing.T) {
	t.Parallel()

	changes := sampleChanges(t)
	assert.Equal(t, "01abc456XY789", string(changes.Apply([]byte("0123456789"))))
	assert.Equal(t, 3, changes.Delta())
	assert.Equal(t, 13, changes.NewLen())
	assert.Equal(t, 2, changes.FirstChange())
	assert.False(t, changes.IsEmpty())

	env, ok := changes.Envelope()
	require.True(t, ok)
	assert.Equal(t, lexer.Change{Start: 2, OldEnd: 7, NewEnd: 10}, env)
}

func TestChanges_Empty(t *testing.T) {
	t.Parallel()

	changes, err := edit.NewChanges(nil, 5)
	require.NoError(t, err)
	assert.True(t, changes.IsEmpty())
	assert.Equal(t, 0, changes.Delta())
	assert.Equal(t, 5, changes.FirstChange())

	_, ok := changes.Envelope()
	assert.False(t, ok)

	got, ok := changes.MapNewToOld(3)
	assert.True(t, ok)
	assert.Equal(t, 3, got)
}

func TestChanges_MapOldToNew(t *testing.T) {
	t.Parallel()

	changes := sampleChanges(t)
	tests := map[int]int{0: 0, 2: 2, 3: 5, 4: 5, 6: 7, 7: 8, 8: 11, 10: 13}
	for old, want := range tests {
		assert.Equal(t, want, changes.MapOldToNew(old), "old offset %d", old)
	}
}

func TestChanges_MapNewToOld(t *testing.T) {
	t.Parallel()

	changes := sampleChanges(t)
	tests := []struct {
		offset int
		want   int
		ok     bool
	}{
		{offset: 0, want: 0, ok: true},
		{offset: 1, want: 1, ok: true},
		{offset: 2, ok: false},
		{offset: 4, ok: false},
		{offset: 5, want: 4, ok: true},
		{offset: 7, want: 6, ok: true},
		{offset: 8, ok: false},
		{offset: 9, ok: false},
		{offset: 10, want: 7, ok: true},
		{offset: 13, want: 10, ok: true},
	}

	for _, tt := range tests {
		got, ok := changes.MapNewToOld(tt.offset)
		assert.Equal(t, tt.ok, ok, "new offset %d", tt.offset)
		if tt.ok {
			assert.Equal(t, tt.want, got, "new offset %d", tt.offset)
		}
	}
}

func TestChanges_OverlapsAndTouches(t *testing.T) {
	t.Parallel()

	changes := sampleChanges(t)

	assert.False(t, changes.Overlaps(0, 2))
	assert.True(t, changes.Overlaps(1, 3))
	assert.False(t, changes.Overlaps(4, 7))
	assert.False(t, changes.Overlaps(7, 9), "an insertion has no old extent")

	assert.True(t, changes.Touches(0, 2))
	assert.True(t, changes.Touches(4, 5))
	assert.False(t, changes.Touches(5, 6))
	assert.True(t, changes.Touches(7, 9))
	assert.False(t, changes.Touches(8, 10))
}

func TestNewChanges_Rejects(t *testing.T) {
	t.Parallel()

	_, err := edit.NewChanges([]edit.TextEdit{{Start: 0, End: 11}}, 10)
	var verr *edit.ValidationError
	require.ErrorAs(t, err, &verr)
}
