package util

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMd5Hex(t *testing.T) {
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", Md5Hex())
	assert.Equal(t, Md5Hex([]byte("abcdef")), Md5Hex([]byte("abc"), []byte("def")))
}

func TestHashUUID(t *testing.T) {
	type cfg struct{ W, H int }
	a := HashUUID(cfg{1, 2})
	assert.Equal(t, a, HashUUID(cfg{1, 2}))
	assert.NotEqual(t, a, HashUUID(cfg{2, 1}))

	id, err := uuid.Parse(a)
	assert.NoError(t, err)
	assert.Equal(t, uuid.Version(3), id.Version())

	assert.Equal(t, uuid.Nil.String(), HashUUID(func() {}))
}
