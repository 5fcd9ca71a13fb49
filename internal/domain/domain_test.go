package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "ro***@example.com", MaskEmail("roberto@example.com"))
	assert.Equal(t, "an***@x.io", MaskEmail("ana@x.io"))
	// locals shorter than two characters cannot be masked meaningfully
	assert.Equal(t, "a@example.com", MaskEmail("a@example.com"))
	assert.Equal(t, "not-an-email", MaskEmail("not-an-email"))
}

func TestCanonicalPair(t *testing.T) {
	lo, hi := CanonicalPair(7, 3)
	assert.EqualValues(t, 3, lo)
	assert.EqualValues(t, 7, hi)

	lo, hi = CanonicalPair(3, 7)
	assert.EqualValues(t, 3, lo)
	assert.EqualValues(t, 7, hi)
}

func TestFriendship_Addressee(t *testing.T) {
	f := &Friendship{UserLoID: 3, UserHiID: 7, RequesterID: 7}
	assert.EqualValues(t, 3, f.AddresseeID())
	assert.EqualValues(t, 3, f.OtherID(7))
	assert.EqualValues(t, 7, f.OtherID(3))
	assert.True(t, f.Involves(3))
	assert.False(t, f.Involves(5))
}

func TestMediaStatus_Valid(t *testing.T) {
	for _, s := range []MediaStatus{StatusWantToWatch, StatusWatching, StatusRewatch, StatusWatched} {
		assert.True(t, s.Valid())
	}
	assert.False(t, MediaStatus("watched").Valid())
	assert.False(t, MediaStatus("").Valid())
}
