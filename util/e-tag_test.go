package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateETag(t *testing.T) {
	a := GenerateETag(map[string]int{"a": 1})
	b := GenerateETag(map[string]int{"a": 1})
	c := GenerateETag(map[string]int{"a": 2})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 42)
	assert.Equal(t, byte('"'), a[0])
	assert.Equal(t, GenerateETag("abc"), GenerateETag([]byte("abc")))
}

func TestMatchETag(t *testing.T) {
	etag := GenerateETag("history")

	assert.True(t, MatchETag(etag, etag))
	assert.True(t, MatchETag("W/"+etag, etag))
	assert.True(t, MatchETag(`"other", `+etag, etag))
	assert.True(t, MatchETag("*", etag))
	assert.False(t, MatchETag("", etag))
	assert.False(t, MatchETag(`"other"`, etag))
}
