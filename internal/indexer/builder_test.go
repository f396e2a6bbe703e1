package indexer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/indexer/tokenizer"
)

func writeFiles(t *testing.T, files map[string]string) map[string]string {
	t.Helper()
	dir := t.TempDir()
	paths := make(map[string]string, len(files))
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		paths[name] = p
	}
	return paths
}

func TestBuildBasicScenario(t *testing.T) {
	p := writeFiles(t, map[string]string{"a.txt": "cat dog cat", "b.txt": "dog"})
	idx := index.New()

	report, err := NewBuilder(tokenizer.Limits{MaxWordLength: 49}, 0).Build(context.Background(), idx, []string{p["a.txt"], p["b.txt"]})
	require.NoError(t, err)

	assert.Equal(t, 4, report.Words)
	assert.Empty(t, report.Skipped)
	require.Len(t, report.Files, 2)

	cat, ok := idx.Lookup("cat")
	require.True(t, ok)
	assert.Equal(t, 1, cat.FileCount)
	assert.Equal(t, []index.FileOccurrence{{File: p["a.txt"], Count: 2}}, cat.Occurrences)

	dog, ok := idx.Lookup("dog")
	require.True(t, ok)
	assert.Equal(t, 2, dog.FileCount)
	assert.ElementsMatch(t, []index.FileOccurrence{{File: p["a.txt"], Count: 1}, {File: p["b.txt"], Count: 1}}, dog.Occurrences)
}

func TestBuildSkipsUnreadableFiles(t *testing.T) {
	p := writeFiles(t, map[string]string{"a.txt": "alpha", "c.txt": "gamma"})
	missing := filepath.Join(t.TempDir(), "gone.txt")
	idx := index.New()

	report, err := NewBuilder(tokenizer.Limits{}, 0).Build(context.Background(), idx, []string{p["a.txt"], missing, p["c.txt"]})
	require.NoError(t, err)

	require.Len(t, report.Skipped, 1)
	assert.Equal(t, missing, report.Skipped[0].File)
	assert.Contains(t, report.Skipped[0].Reason, "opening file")
	_, ok := idx.Lookup("gamma")
	assert.True(t, ok)
}

func TestBuildWhitespaceOnlyFile(t *testing.T) {
	p := writeFiles(t, map[string]string{"blank.txt": " \n\t \n"})
	idx := index.New()

	report, err := NewBuilder(tokenizer.Limits{}, 0).Build(context.Background(), idx, []string{p["blank.txt"]})
	require.NoError(t, err)
	assert.Empty(t, report.Skipped)
	assert.Zero(t, report.Words)
	assert.True(t, idx.IsEmpty())
}

func TestBuildReportsRejectedTokens(t *testing.T) {
	long := strings.Repeat("x", 50)
	p := writeFiles(t, map[string]string{"a.txt": "ok " + long + " semi;colon"})
	idx := index.New()

	report, err := NewBuilder(tokenizer.Limits{MaxWordLength: 49}, 0).Build(context.Background(), idx, []string{p["a.txt"]})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Words)
	assert.Equal(t, 2, report.Rejected)
	_, ok := idx.Lookup(long[:49])
	assert.False(t, ok, "over-long tokens must not be truncated into the index")
}

func TestBuildHugeTokenDoesNotStopFile(t *testing.T) {
	huge := strings.Repeat("x", 2<<20)
	p := writeFiles(t, map[string]string{"a.txt": "before " + huge + " after"})
	idx := index.New()

	report, err := NewBuilder(tokenizer.Limits{MaxWordLength: 49}, 0).Build(context.Background(), idx, []string{p["a.txt"]})
	require.NoError(t, err)
	assert.Empty(t, report.Skipped)
	require.Len(t, report.Files, 1)
	assert.Equal(t, 2, report.Words)
	assert.Equal(t, 1, report.Rejected)

	for _, w := range []string{"before", "after"} {
		_, ok := idx.Lookup(w)
		assert.True(t, ok, w)
	}
}

func TestBuildReadErrorLeavesNoPartialFile(t *testing.T) {
	p := writeFiles(t, map[string]string{"a.txt": "alpha"})
	dir := t.TempDir() // opens, but reads fail
	idx := index.New()

	report, err := NewBuilder(tokenizer.Limits{}, 0).Build(context.Background(), idx, []string{dir, p["a.txt"]})
	require.NoError(t, err)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, dir, report.Skipped[0].File)
	assert.Contains(t, report.Skipped[0].Reason, "reading file")
	require.Len(t, report.Files, 1)
	assert.Equal(t, p["a.txt"], report.Files[0].File)
	assert.Equal(t, 1, idx.Len())
}

func TestBuildRejectsLongFileNames(t *testing.T) {
	p := writeFiles(t, map[string]string{"a.txt": "word"})
	idx := index.New()

	report, err := NewBuilder(tokenizer.Limits{}, 5).Build(context.Background(), idx, []string{p["a.txt"]})
	require.NoError(t, err)
	require.Len(t, report.Skipped, 1)
	assert.Contains(t, report.Skipped[0].Reason, "longer than 5")
	assert.True(t, idx.IsEmpty())
}

func TestBuildDeterministic(t *testing.T) {
	p := writeFiles(t, map[string]string{"a.txt": "x y x z", "b.txt": "z z y"})
	files := []string{p["a.txt"], p["b.txt"]}

	first, second := index.New(), index.New()
	b := NewBuilder(tokenizer.Limits{}, 0)
	_, err := b.Build(context.Background(), first, files)
	require.NoError(t, err)
	_, err = b.Build(context.Background(), second, files)
	require.NoError(t, err)

	first.ForEach(func(_ int, e index.WordEntry) bool {
		other, ok := second.Lookup(e.Word)
		require.True(t, ok)
		assert.Equal(t, e, other)
		return true
	})
}

func TestBuildCancelled(t *testing.T) {
	p := writeFiles(t, map[string]string{"a.txt": "word"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBuilder(tokenizer.Limits{}, 0).Build(ctx, index.New(), []string{p["a.txt"]})
	require.ErrorIs(t, err, context.Canceled)
}
