// Package display renders the index and lookup results for the console,
// either as the fixed-width table of the interactive menu or as JSON.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/searcher/executor"
)

// EmptyMessage is printed when the index holds no words.
const EmptyMessage = "Database is empty!"

var rule = strings.Repeat("-", 69)

// Database writes every bucket, word and occurrence of idx as a table.
func Database(w io.Writer, idx *index.Index) error {
	var sb strings.Builder
	sb.WriteString("--------------------------->> DATABASE <<----------------------------\n")
	sb.WriteString(rule + "\n")
	sb.WriteString("Index   Word                 File Count  File Details\n")
	sb.WriteString(rule + "\n")
	if idx.IsEmpty() {
		sb.WriteString(EmptyMessage + "\n")
	}
	idx.ForEach(func(bucket int, e index.WordEntry) bool {
		writeEntry(&sb, bucket, e)
		sb.WriteString("\n")
		return true
	})
	sb.WriteString(rule + "\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// Result writes a single lookup outcome.
func Result(w io.Writer, res executor.Result) error {
	if !res.Found {
		_, err := fmt.Fprintf(w, "Word %s is not present in database.\n", res.Query)
		return err
	}
	var sb strings.Builder
	writeEntry(&sb, res.Bucket, res.Entry)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeEntry(sb *strings.Builder, bucket int, e index.WordEntry) {
	fmt.Fprintf(sb, "[%-2d]   %-20s %-10d", bucket, e.Word, e.FileCount)
	if len(e.Occurrences) == 0 {
		sb.WriteString("\n")
		return
	}
	for i, o := range e.Occurrences {
		if i > 0 {
			fmt.Fprintf(sb, "       %-20s %-10s", "", "")
		}
		fmt.Fprintf(sb, " | File:%-15s : %d\n", o.File, o.Count)
	}
}

type jsonOccurrence struct {
	File  string `json:"file"`
	Count int    `json:"count"`
}

type jsonEntry struct {
	Bucket      int              `json:"bucket"`
	Word        string           `json:"word"`
	FileCount   int              `json:"file_count"`
	Total       int              `json:"total"`
	Occurrences []jsonOccurrence `json:"occurrences"`
}

func toJSON(bucket int, e index.WordEntry) jsonEntry {
	je := jsonEntry{
		Bucket:      bucket,
		Word:        e.Word,
		FileCount:   e.FileCount,
		Total:       e.TotalCount(),
		Occurrences: make([]jsonOccurrence, 0, len(e.Occurrences)),
	}
	for _, o := range e.Occurrences {
		je.Occurrences = append(je.Occurrences, jsonOccurrence{File: o.File, Count: o.Count})
	}
	return je
}

// DatabaseJSON writes idx as a JSON array of entries.
func DatabaseJSON(w io.Writer, idx *index.Index) error {
	entries := make([]jsonEntry, 0, idx.Len())
	idx.ForEach(func(bucket int, e index.WordEntry) bool {
		entries = append(entries, toJSON(bucket, e))
		return true
	})
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// ResultJSON writes a lookup outcome as JSON.
func ResultJSON(w io.Writer, res executor.Result) error {
	out := struct {
		Query string     `json:"query"`
		Found bool       `json:"found"`
		Entry *jsonEntry `json:"entry,omitempty"`
	}{Query: res.Query, Found: res.Found}
	if res.Found {
		je := toJSON(res.Bucket, res.Entry)
		out.Entry = &je
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
