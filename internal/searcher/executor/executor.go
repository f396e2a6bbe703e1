// Package executor answers single-word lookups against the index.
package executor

import (
	"strings"
	"unicode"

	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/indexer/index"
	apperrors "github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/errors"
)

// Result is the outcome of one lookup. Found is false when the word is not
// indexed; Entry is then the zero value.
type Result struct {
	Query  string
	Bucket int
	Found  bool
	Entry  index.WordEntry
}

// Query trims word and looks it up with exact, case-sensitive matching.
// Empty or whitespace-only input is rejected with errors.ErrInvalidInput,
// as is input holding more than one word.
func Query(idx *index.Index, word string) (Result, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return Result{}, apperrors.New(apperrors.ErrInvalidInput, apperrors.ExitUsage, "please provide a valid word")
	}
	if strings.ContainsFunc(word, unicode.IsSpace) {
		return Result{}, apperrors.Newf(apperrors.ErrInvalidInput, apperrors.ExitUsage, "%q is more than one word", word)
	}
	res := Result{Query: word, Bucket: index.BucketOf(word)}
	res.Entry, res.Found = idx.Lookup(word)
	return res, nil
}
