package index

import (
	"fmt"
)

// Index is the in-memory inverted index: 27 partitions, each holding the
// words whose BucketOf value selects it. It is not safe for concurrent use.
type Index struct {
	buckets [NumBuckets]partition
	words   int
}

type partition struct {
	entries []*WordEntry
	byWord  map[string]int
}

func New() *Index {
	return &Index{}
}

// FindWord scans one partition for an exact, case-sensitive match.
func (x *Index) FindWord(bucket int, word string) (*WordEntry, bool) {
	if bucket < 0 || bucket >= NumBuckets {
		return nil, false
	}
	p := &x.buckets[bucket]
	i, ok := p.byWord[word]
	if !ok {
		return nil, false
	}
	return p.entries[i], true
}

// Insert records one sighting of word in file.
func (x *Index) Insert(word, file string) {
	b := BucketOf(word)
	entry, ok := x.FindWord(b, word)
	if !ok {
		entry = &WordEntry{Word: word}
		x.add(b, entry)
	}
	for i := range entry.Occurrences {
		if entry.Occurrences[i].File == file {
			entry.Occurrences[i].Count++
			return
		}
	}
	entry.Occurrences = append(entry.Occurrences, FileOccurrence{File: file, Count: 1})
	entry.FileCount++
}

// Restore places a previously serialized entry into bucket verbatim. Counts
// are taken as given, but the partition and fan-out invariants are checked.
func (x *Index) Restore(bucket int, e WordEntry) error {
	if bucket < 0 || bucket >= NumBuckets {
		return fmt.Errorf("bucket %d out of range [0,%d]", bucket, NumBuckets-1)
	}
	if got := BucketOf(e.Word); got != bucket {
		return fmt.Errorf("word %q belongs to bucket %d, not %d", e.Word, got, bucket)
	}
	if _, dup := x.FindWord(bucket, e.Word); dup {
		return fmt.Errorf("duplicate word %q in bucket %d", e.Word, bucket)
	}
	if e.FileCount != len(e.Occurrences) {
		return fmt.Errorf("word %q: file count %d but %d occurrences", e.Word, e.FileCount, len(e.Occurrences))
	}
	seen := make(map[string]struct{}, len(e.Occurrences))
	for _, o := range e.Occurrences {
		if o.Count < 1 {
			return fmt.Errorf("word %q: file %q has count %d", e.Word, o.File, o.Count)
		}
		if _, dup := seen[o.File]; dup {
			return fmt.Errorf("word %q: duplicate file %q", e.Word, o.File)
		}
		seen[o.File] = struct{}{}
	}
	restored := e.clone()
	x.add(bucket, &restored)
	return nil
}

func (x *Index) add(bucket int, e *WordEntry) {
	p := &x.buckets[bucket]
	if p.byWord == nil {
		p.byWord = make(map[string]int)
	}
	p.byWord[e.Word] = len(p.entries)
	p.entries = append(p.entries, e)
	x.words++
}

// Lookup returns a copy of the entry for word.
func (x *Index) Lookup(word string) (WordEntry, bool) {
	e, ok := x.FindWord(BucketOf(word), word)
	if !ok {
		return WordEntry{}, false
	}
	return e.clone(), true
}

// ForEach visits buckets in ascending order and entries in insertion order.
// Returning false from fn stops the walk.
func (x *Index) ForEach(fn func(bucket int, e WordEntry) bool) {
	for b := range x.buckets {
		for _, e := range x.buckets[b].entries {
			if !fn(b, e.clone()) {
				return
			}
		}
	}
}

// Reset empties every partition.
func (x *Index) Reset() {
	x.buckets = [NumBuckets]partition{}
	x.words = 0
}

// Len is the number of distinct words.
func (x *Index) Len() int {
	return x.words
}

func (x *Index) IsEmpty() bool {
	return x.words == 0
}

func (x *Index) BucketLen(bucket int) int {
	if bucket < 0 || bucket >= NumBuckets {
		return 0
	}
	return len(x.buckets[bucket].entries)
}
