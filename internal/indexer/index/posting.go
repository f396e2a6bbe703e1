package index

// FileOccurrence records how many times a word appears in one file.
type FileOccurrence struct {
	File  string
	Count int
}

// WordEntry is one distinct word and the files it occurs in. FileCount always
// equals len(Occurrences).
type WordEntry struct {
	Word        string
	FileCount   int
	Occurrences []FileOccurrence
}

func (e WordEntry) clone() WordEntry {
	occ := make([]FileOccurrence, len(e.Occurrences))
	copy(occ, e.Occurrences)
	e.Occurrences = occ
	return e
}

// TotalCount is the number of sightings of the word across all files.
func (e WordEntry) TotalCount() int {
	total := 0
	for _, o := range e.Occurrences {
		total += o.Count
	}
	return total
}
