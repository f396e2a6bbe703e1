// Package backup converts an index to and from the backup.txt text format:
//
//	#<bucket>;
//	<word>; <fileCount>; <file1>; <count1>; ... #
//
// One marker line per non-empty bucket, one line per word. Fields are
// separated by "; " and nothing is escaped, so values containing ';' or a
// line break are refused by the writer.
package backup

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/indexer/index"
	apperrors "github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/errors"
)

const (
	fieldSep   = "; "
	terminator = "#"
)

// Encode writes idx to w. The whole backup is rendered before anything is
// written, so an unencodable value leaves w untouched.
func Encode(w io.Writer, idx *index.Index) error {
	data, err := Marshal(idx)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	return nil
}

// Marshal renders idx in the backup format.
func Marshal(idx *index.Index) ([]byte, error) {
	var buf bytes.Buffer
	lastBucket := -1
	var encErr error
	idx.ForEach(func(bucket int, e index.WordEntry) bool {
		if err := checkEncodable("word", e.Word); err != nil {
			encErr = err
			return false
		}
		if bucket != lastBucket {
			buf.WriteString(terminator)
			buf.WriteString(strconv.Itoa(bucket))
			buf.WriteString(";\n")
			lastBucket = bucket
		}
		buf.WriteString(e.Word)
		buf.WriteString(fieldSep)
		buf.WriteString(strconv.Itoa(e.FileCount))
		buf.WriteString(";")
		for _, o := range e.Occurrences {
			if err := checkEncodable("file name", o.File); err != nil {
				encErr = fmt.Errorf("word %q: %w", e.Word, err)
				return false
			}
			buf.WriteString(" ")
			buf.WriteString(o.File)
			buf.WriteString(fieldSep)
			buf.WriteString(strconv.Itoa(o.Count))
			buf.WriteString(";")
		}
		buf.WriteString(" " + terminator + "\n")
		return true
	})
	if encErr != nil {
		return nil, encErr
	}
	return buf.Bytes(), nil
}

func checkEncodable(kind, v string) error {
	if v == "" && kind == "word" {
		return apperrors.Newf(apperrors.ErrUnencodable, apperrors.ExitData, "empty %s", kind)
	}
	if strings.ContainsAny(v, ";\r\n") {
		return apperrors.Newf(apperrors.ErrUnencodable, apperrors.ExitData, "%s %q contains ';' or a line break", kind, v)
	}
	return nil
}
