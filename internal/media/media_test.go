package media

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("image/png", 1024))
	assert.NoError(t, Validate("IMAGE/JPEG", MaxImageBytes))
	assert.ErrorIs(t, Validate("application/pdf", 1024), ErrNotImage)
	assert.ErrorIs(t, Validate("", 1024), ErrNotImage)
	assert.ErrorIs(t, Validate("image/webp", 0), ErrEmpty)
	assert.ErrorIs(t, Validate("image/webp", MaxImageBytes+1), ErrTooLarge)
}

func TestObjectKeyKeepsExtension(t *testing.T) {
	key := ObjectKey("Living Room.JPG")
	assert.True(t, strings.HasPrefix(key, "images/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.NotEqual(t, key, ObjectKey("Living Room.JPG"))

	assert.Len(t, ObjectKey("noext"), len("images/")+36)
}
