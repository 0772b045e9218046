package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(New(NotFound, "post not found")))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(0), KindOf(nil))
}

func TestIs(t *testing.T) {
	err := New(Authorization, "not authorized to remove this comment")
	assert.True(t, Is(err, Authorization))
	assert.False(t, Is(err, NotFound))
	assert.False(t, Is(nil, NotFound))
}

func TestPublicHidesCause(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := Wrap(Persistence, "failed to fetch posts", cause)

	assert.Equal(t, "failed to fetch posts", err.Public())
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestNewf(t *testing.T) {
	err := Newf(Validation, "invalid id %q", "abc")
	assert.Equal(t, `invalid id "abc"`, err.Message)
	assert.Equal(t, Validation, err.Kind)
}
