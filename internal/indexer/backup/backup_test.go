package backup

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/indexer/index"
	apperrors "github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/errors"
)

type tuple struct {
	bucket int
	word   string
	file   string
	count  int
}

func tuples(idx *index.Index) []tuple {
	var out []tuple
	idx.ForEach(func(b int, e index.WordEntry) bool {
		for _, o := range e.Occurrences {
			out = append(out, tuple{b, e.Word, o.File, o.Count})
		}
		return true
	})
	return out
}

func TestMarshalFormat(t *testing.T) {
	idx := index.New()
	idx.Insert("cat", "a.txt")
	idx.Insert("dog", "a.txt")
	idx.Insert("cat", "a.txt")
	idx.Insert("dog", "b.txt")
	idx.Insert("42", "b.txt")

	data, err := Marshal(idx)
	require.NoError(t, err)

	want := "#2;\n" +
		"cat; 1; a.txt; 2; #\n" +
		"#3;\n" +
		"dog; 2; a.txt; 1; b.txt; 1; #\n" +
		"#26;\n" +
		"42; 1; b.txt; 1; #\n"
	assert.Equal(t, want, string(data))
}

func TestMarshalGroupsWordsUnderOneMarker(t *testing.T) {
	idx := index.New()
	idx.Insert("apple", "a.txt")
	idx.Insert("Avocado", "a.txt")

	data, err := Marshal(idx)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "#0;"))
	assert.Equal(t, "#0;\napple; 1; a.txt; 1; #\nAvocado; 1; a.txt; 1; #\n", string(data))
}

func TestMarshalEmptyIndex(t *testing.T) {
	data, err := Marshal(index.New())
	require.NoError(t, err)
	assert.Empty(t, data)

	idx, err := Unmarshal(data)
	require.NoError(t, err)
	assert.True(t, idx.IsEmpty())
}

func TestEncodeRefusesSeparator(t *testing.T) {
	idx := index.New()
	idx.Insert("fine", "a.txt")
	idx.Insert("semi;colon", "a.txt")

	var buf bytes.Buffer
	err := Encode(&buf, idx)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnencodable)
	assert.Zero(t, buf.Len())
}

func TestEncodeRefusesFileWithLineBreak(t *testing.T) {
	idx := index.New()
	idx.Insert("word", "bad\nname.txt")

	_, err := Marshal(idx)
	assert.ErrorIs(t, err, apperrors.ErrUnencodable)
}

func TestRoundTrip(t *testing.T) {
	idx := index.New()
	rng := rand.New(rand.NewSource(7))
	vocab := []string{"alpha", "Beta", "gamma", "#tag", "#", "9lives", "zulu", "x", "émigré", "with-dash", "a.b"}
	files := []string{"a.txt", "dir/b.txt", "with space.txt", "c #.txt"}
	for i := 0; i < 500; i++ {
		idx.Insert(vocab[rng.Intn(len(vocab))], files[rng.Intn(len(files))])
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, idx))

	restored, err := Decode(&buf)
	require.NoError(t, err)
	assert.ElementsMatch(t, tuples(idx), tuples(restored))
	assert.Equal(t, idx.Len(), restored.Len())

	restored.ForEach(func(_ int, e index.WordEntry) bool {
		assert.Equal(t, len(e.Occurrences), e.FileCount)
		return true
	})
}

func TestDecodeKeepsCountsVerbatim(t *testing.T) {
	data := "#3;\ndog; 2; b.txt; 5; a.txt; 9; #\n"
	idx, err := Unmarshal([]byte(data))
	require.NoError(t, err)

	e, ok := idx.Lookup("dog")
	require.True(t, ok)
	assert.Equal(t, 2, e.FileCount)
	assert.Equal(t, []index.FileOccurrence{{File: "b.txt", Count: 5}, {File: "a.txt", Count: 9}}, e.Occurrences)
}

func TestDecodeToleratesCRLFAndBlankLines(t *testing.T) {
	data := "#2;\r\ncat; 1; a.txt; 2; #\r\n\r\n#3;\r\ndog; 1; a.txt; 1; #\r\n\n"
	idx, err := Unmarshal([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())
}

func TestDecodeZeroFileCount(t *testing.T) {
	idx, err := Unmarshal([]byte("#14;\norphan; 0; #\n"))
	require.NoError(t, err)
	e, ok := idx.Lookup("orphan")
	require.True(t, ok)
	assert.Zero(t, e.FileCount)
	assert.Empty(t, e.Occurrences)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
		line int
		msg  string
	}{
		{"word before marker", "cat; 1; a.txt; 1; #\n", 1, "before any bucket marker"},
		{"bucket out of range", "#27;\n", 1, "out of range"},
		{"wrong bucket", "#0;\ncat; 1; a.txt; 1; #\n", 2, "belongs to bucket 2"},
		{"missing terminator", "#2;\ncat; 1; a.txt; 1;\n", 2, "terminator"},
		{"unterminated field", "#2;\ncat; 1; a.txt; 1 #\n", 2, "not terminated"},
		{"bad file count", "#2;\ncat; one; a.txt; 1; #\n", 2, "invalid file count"},
		{"negative file count", "#2;\ncat; -1; #\n", 2, "invalid file count"},
		{"too few pairs", "#2;\ncat; 2; a.txt; 1; #\n", 2, "file count 2 but 2 fields"},
		{"too many pairs", "#2;\ncat; 1; a.txt; 1; b.txt; 1; #\n", 2, "file count 1 but 4 fields"},
		{"bad count", "#2;\ncat; 1; a.txt; x; #\n", 2, "invalid count"},
		{"zero count", "#2;\ncat; 1; a.txt; 0; #\n", 2, "count 0"},
		{"duplicate file", "#2;\ncat; 2; a.txt; 1; a.txt; 1; #\n", 2, "duplicate file"},
		{"duplicate word", "#2;\ncat; 1; a.txt; 1; #\ncat; 1; b.txt; 1; #\n", 3, "duplicate word"},
		{"repeated bucket", "#2;\ncat; 1; a.txt; 1; #\n#2;\n", 3, "repeated"},
		{"trailing garbage", "#2;\ncat; 1; a.txt; 1; #\nnot a record\n", 3, "terminator"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := Unmarshal([]byte(tt.data))
			require.Error(t, err)
			assert.Nil(t, idx)
			assert.ErrorIs(t, err, apperrors.ErrMalformedBackup)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.line, pe.Line)
			assert.Contains(t, pe.Msg, tt.msg)
		})
	}
}

func TestParseMarker(t *testing.T) {
	b, ok, err := parseMarker("#12;")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 12, b)

	for _, s := range []string{"#;", "#a;", "#1", "#tag; 1; a.txt; 1; #", "12;"} {
		_, ok, _ := parseMarker(s)
		assert.False(t, ok, s)
	}
}

func BenchmarkMarshal(b *testing.B) {
	idx := index.New()
	for i := 0; i < 5000; i++ {
		idx.Insert(fmt.Sprintf("word%d", i%1000), fmt.Sprintf("doc-%d.txt", i%20))
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Marshal(idx); err != nil {
			b.Fatal(err)
		}
	}
}
