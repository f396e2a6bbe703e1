package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketOf(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"apple", 0},
		{"Apple", 0},
		{"zebra", 25},
		{"Zebra", 25},
		{"middle", 12},
		{"42", OtherBucket},
		{"#include", OtherBucket},
		{"_under", OtherBucket},
		{"éclair", OtherBucket},
		{"", OtherBucket},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketOf(tt.word))
		})
	}
}

func TestBucketOfTotal(t *testing.T) {
	for c := 0; c < 256; c++ {
		b := BucketOf(string([]byte{byte(c), 'x'}))
		assert.GreaterOrEqual(t, b, 0)
		assert.Less(t, b, NumBuckets)
		isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if isLetter {
			assert.Less(t, b, OtherBucket, "byte %q", c)
		} else {
			assert.Equal(t, OtherBucket, b, "byte %q", c)
		}
	}
}
