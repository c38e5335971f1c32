package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytes(t *testing.T) {
	// sha256("") 是固定值，可以直接对照。
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Bytes(nil))
	assert.Equal(t, Bytes([]byte(`[1,2,3]`)), Bytes([]byte(`[1,2,3]`)))
	assert.NotEqual(t, Bytes([]byte(`[1,2,3]`)), Bytes([]byte(`[1,2,4]`)))
}

func TestShort(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc", Short(nil))
	assert.Len(t, Short([]byte(`{"mark":"bar"}`)), 12)
}
