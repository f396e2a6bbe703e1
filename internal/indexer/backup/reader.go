package backup

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/indexer/index"
	apperrors "github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/errors"
)

const maxLineSize = 16 * 1024 * 1024

// ParseError reports the first grammar violation found in a backup.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("backup line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return apperrors.ErrMalformedBackup
}

// Decode parses a backup into a fresh index. On any error the partially
// built index is discarded and nil is returned.
func Decode(r io.Reader) (*index.Index, error) {
	idx := index.New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	bucket := -1
	seenBuckets := make(map[int]struct{})
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		if b, ok, err := parseMarker(text); ok {
			if err != nil {
				return nil, &ParseError{Line: line, Msg: err.Error()}
			}
			if _, dup := seenBuckets[b]; dup {
				return nil, &ParseError{Line: line, Msg: fmt.Sprintf("bucket %d repeated", b)}
			}
			seenBuckets[b] = struct{}{}
			bucket = b
			continue
		}
		if bucket < 0 {
			return nil, &ParseError{Line: line, Msg: "word line before any bucket marker"}
		}
		entry, err := parseWordLine(text)
		if err != nil {
			return nil, &ParseError{Line: line, Msg: err.Error()}
		}
		if err := idx.Restore(bucket, entry); err != nil {
			return nil, &ParseError{Line: line, Msg: err.Error()}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{Line: line + 1, Msg: err.Error()}
	}
	return idx, nil
}

// Unmarshal parses an in-memory backup.
func Unmarshal(data []byte) (*index.Index, error) {
	return Decode(bytes.NewReader(data))
}

// parseMarker recognises "#<digits>;". ok is false for anything else, which
// lets words that merely start with '#' be parsed as word lines.
func parseMarker(text string) (bucket int, ok bool, err error) {
	if !strings.HasPrefix(text, terminator) || !strings.HasSuffix(text, ";") || len(text) < 3 {
		return 0, false, nil
	}
	digits := text[1 : len(text)-1]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false, nil
		}
	}
	n, convErr := strconv.Atoi(digits)
	if convErr != nil || n >= index.NumBuckets {
		return 0, true, fmt.Errorf("bucket %s out of range [0,%d]", digits, index.NumBuckets-1)
	}
	return n, true, nil
}

func parseWordLine(text string) (index.WordEntry, error) {
	body, ok := strings.CutSuffix(text, " "+terminator)
	if !ok {
		return index.WordEntry{}, fmt.Errorf("missing %q terminator", terminator)
	}
	body, ok = strings.CutSuffix(body, ";")
	if !ok {
		return index.WordEntry{}, fmt.Errorf("last field is not terminated by ';'")
	}
	fields := strings.Split(body, fieldSep)
	if len(fields) < 2 {
		return index.WordEntry{}, fmt.Errorf("expected word and file count")
	}
	word := fields[0]
	if word == "" {
		return index.WordEntry{}, fmt.Errorf("empty word")
	}
	fileCount, err := strconv.Atoi(fields[1])
	if err != nil || fileCount < 0 {
		return index.WordEntry{}, fmt.Errorf("word %q: invalid file count %q", word, fields[1])
	}
	pairs := fields[2:]
	if len(pairs) != 2*fileCount {
		return index.WordEntry{}, fmt.Errorf("word %q: file count %d but %d fields follow", word, fileCount, len(pairs))
	}
	entry := index.WordEntry{
		Word:        word,
		FileCount:   fileCount,
		Occurrences: make([]index.FileOccurrence, 0, fileCount),
	}
	for i := 0; i < len(pairs); i += 2 {
		count, err := strconv.Atoi(pairs[i+1])
		if err != nil {
			return index.WordEntry{}, fmt.Errorf("word %q: invalid count %q for file %q", word, pairs[i+1], pairs[i])
		}
		entry.Occurrences = append(entry.Occurrences, index.FileOccurrence{File: pairs[i], Count: count})
	}
	return entry, nil
}
