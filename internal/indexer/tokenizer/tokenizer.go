// Package tokenizer splits file contents into words for the inverted index.
// Words are whitespace-delimited and kept verbatim: no case folding, no
// punctuation stripping, no stemming. Tokens the index cannot hold are
// rejected and reported instead of being truncated.
package tokenizer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Separator is reserved by the backup format and may not appear in a word.
const Separator = ";"

const maxSamples = 8

// Limits bounds accepted tokens. A zero MaxWordLength accepts any length.
type Limits struct {
	MaxWordLength int
}

// Rejection describes one token that was not indexed.
type Rejection struct {
	Token  string
	Reason string
}

// Stats summarises one Scan call. Samples holds at most a handful of
// rejections; Rejected counts all of them.
type Stats struct {
	Tokens   int
	Rejected int
	Samples  []Rejection
}

// Check reports why word cannot be indexed, or "" when it can.
func (l Limits) Check(word string) string {
	if l.MaxWordLength > 0 && utf8.RuneCountInString(word) > l.MaxWordLength {
		return fmt.Sprintf("longer than %d characters", l.MaxWordLength)
	}
	if strings.Contains(word, Separator) {
		return "contains reserved separator " + Separator
	}
	return ""
}

// Scan reads whitespace-delimited tokens from r and calls fn for every token
// that passes the limits. A token over MaxWordLength is counted and sampled
// but only its first MaxWordLength runes are ever buffered, so a run of any
// length is skipped without stopping the scan.
func Scan(r io.Reader, limits Limits, fn func(word string)) (Stats, error) {
	var (
		stats    Stats
		buf      []byte
		runes    int
		overlong bool
	)
	flush := func() {
		if runes == 0 {
			return
		}
		word := string(buf)
		reason := limits.Check(word)
		if overlong {
			reason = fmt.Sprintf("longer than %d characters", limits.MaxWordLength)
			word += "..."
		}
		if reason != "" {
			stats.Rejected++
			if len(stats.Samples) < maxSamples {
				stats.Samples = append(stats.Samples, Rejection{Token: word, Reason: reason})
			}
		} else {
			stats.Tokens++
			fn(word)
		}
		buf, runes, overlong = buf[:0], 0, false
	}

	br := bufio.NewReader(r)
	for {
		c, size, err := br.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				flush()
				return stats, nil
			}
			return stats, fmt.Errorf("scanning tokens: %w", err)
		}
		if unicode.IsSpace(c) {
			flush()
			continue
		}
		runes++
		if overlong {
			continue
		}
		if limits.MaxWordLength > 0 && runes > limits.MaxWordLength {
			overlong = true
			continue
		}
		if c == utf8.RuneError && size == 1 {
			// Keep invalid bytes verbatim.
			if err := br.UnreadRune(); err != nil {
				return stats, fmt.Errorf("scanning tokens: %w", err)
			}
			b, err := br.ReadByte()
			if err != nil {
				return stats, fmt.Errorf("scanning tokens: %w", err)
			}
			buf = append(buf, b)
			continue
		}
		buf = utf8.AppendRune(buf, c)
	}
}
