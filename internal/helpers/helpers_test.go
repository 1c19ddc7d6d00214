package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "ab", Truncate("ab", 3))
	assert.Equal(t, "", Truncate("ab", 0))
	assert.Equal(t, "héé", Truncate("hééllo", 3))
}

func TestSyntheticDuration(t *testing.T) {
	for range 1000 {
		d := SyntheticDuration()
		assert.GreaterOrEqual(t, d, 1000)
		assert.Less(t, d, 3000)
	}
}

func TestPtr(t *testing.T) {
	p := Ptr(4.5)
	assert.Equal(t, 4.5, *p)
}
