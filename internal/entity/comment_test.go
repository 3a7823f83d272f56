package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewComment_RatingBounds(t *testing.T) {
	for _, rating := range []int{1, 2, 5} {
		r := rating
		c, err := NewComment("ad-1", "user-1", "Great place", &r)
		assert.NoError(t, err)
		assert.Equal(t, rating, *c.Rating)
	}

	for _, rating := range []int{0, 6, -1} {
		r := rating
		_, err := NewComment("ad-1", "user-1", "Great place", &r)
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "rating", validationErr.Field)
	}
}

func TestNewComment_RatingOptional(t *testing.T) {
	c, err := NewComment("ad-1", "user-1", "Great place", nil)
	assert.NoError(t, err)
	assert.Nil(t, c.Rating)
}

func TestNewComment_RejectsEmptyContent(t *testing.T) {
	_, err := NewComment("ad-1", "user-1", "   ", nil)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "content", validationErr.Field)
}

func TestComment_OwnerID(t *testing.T) {
	c, err := NewComment("ad-1", "user-7", "ok", nil)
	assert.NoError(t, err)
	assert.Equal(t, "user-7", c.OwnerID())
}
