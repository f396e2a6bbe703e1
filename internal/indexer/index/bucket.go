package index

// NumBuckets is the number of partitions: one per ASCII letter plus one
// catch-all for words that do not start with a letter.
const (
	NumBuckets  = 27
	OtherBucket = NumBuckets - 1
)

// BucketOf returns the partition a word belongs to. The first byte is folded
// to lower case for placement only; the stored word keeps its case.
func BucketOf(word string) int {
	if word == "" {
		return OtherBucket
	}
	c := word[0]
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a')
	case c >= 'A' && c <= 'Z':
		return int(c - 'A')
	default:
		return OtherBucket
	}
}
