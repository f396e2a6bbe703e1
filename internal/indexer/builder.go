package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/indexer/tokenizer"
)

// FileStats describes one file the builder scanned.
type FileStats struct {
	File     string
	Words    int
	Rejected int
	Samples  []tokenizer.Rejection
}

// SkippedFile is a file the builder could not index.
type SkippedFile struct {
	File   string
	Reason string
}

// BuildReport summarises one Build call.
type BuildReport struct {
	Files   []FileStats
	Skipped []SkippedFile
	Words   int
	// Rejected counts tokens refused by the tokenizer limits across all files.
	Rejected int
}

// Builder scans files into an index.
type Builder struct {
	limits         tokenizer.Limits
	maxFileNameLen int
	logger         *slog.Logger
}

func NewBuilder(limits tokenizer.Limits, maxFileNameLen int) *Builder {
	return &Builder{
		limits:         limits,
		maxFileNameLen: maxFileNameLen,
		logger:         slog.Default().With("component", "builder"),
	}
}

// Build inserts every accepted word of every file into idx, in list order.
// Files that cannot be read in full or whose names cannot be stored are
// skipped and reported without touching idx; the remaining files are still
// indexed. Cancellation is
// checked between files.
func (b *Builder) Build(ctx context.Context, idx *index.Index, files []string) (BuildReport, error) {
	var report BuildReport
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("build cancelled: %w", err)
		}
		if reason := b.checkFileName(file); reason != "" {
			b.logger.Error("skipping file", "file", file, "reason", reason)
			report.Skipped = append(report.Skipped, SkippedFile{File: file, Reason: reason})
			continue
		}
		stats, err := b.indexFile(idx, file)
		if err != nil {
			b.logger.Error("cannot index file, skipping", "file", file, "error", err)
			report.Skipped = append(report.Skipped, SkippedFile{File: file, Reason: err.Error()})
			continue
		}
		report.Files = append(report.Files, stats)
		report.Words += stats.Words
		report.Rejected += stats.Rejected
		b.logger.Debug("file indexed",
			"file", file,
			"words", stats.Words,
			"rejected", stats.Rejected,
		)
		for _, r := range stats.Samples {
			b.logger.Warn("token rejected", "file", file, "token", r.Token, "reason", r.Reason)
		}
	}
	b.logger.Info("build complete",
		"files", len(report.Files),
		"skipped", len(report.Skipped),
		"words", report.Words,
		"distinct_words", idx.Len(),
	)
	return report, nil
}

func (b *Builder) indexFile(idx *index.Index, file string) (FileStats, error) {
	stats := FileStats{File: file}
	f, err := os.Open(file)
	if err != nil {
		return stats, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()
	// Words are staged so a read error leaves no partial file in idx.
	var words []string
	tok, err := tokenizer.Scan(f, b.limits, func(word string) {
		words = append(words, word)
	})
	if err != nil {
		return stats, fmt.Errorf("reading file: %w", err)
	}
	for _, w := range words {
		idx.Insert(w, file)
	}
	stats.Words = tok.Tokens
	stats.Rejected = tok.Rejected
	stats.Samples = tok.Samples
	return stats, nil
}

func (b *Builder) checkFileName(file string) string {
	if b.maxFileNameLen > 0 && utf8.RuneCountInString(file) > b.maxFileNameLen {
		return fmt.Sprintf("file name longer than %d characters", b.maxFileNameLen)
	}
	if strings.ContainsAny(file, ";\r\n") {
		return "file name contains ';' or a line break"
	}
	return ""
}
