package chunking

import "strings"

// Separator priority: paragraph break, line break, word break, hard cut.
var defaultSeparators = []string{"\n\n", "\n", " ", ""}

type Splitter struct {
	ChunkSize int
	Overlap   int

	separators []string
}

func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 4
	}
	return &Splitter{
		ChunkSize:  chunkSize,
		Overlap:    overlap,
		separators: defaultSeparators,
	}
}

// Split produces chunks of at most ChunkSize runes, cutting at the
// highest-priority separator near each window edge and carrying Overlap
// runes from the tail of each chunk into the next. Empty or
// whitespace-only input yields no chunks.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	runes := []rune(text)
	n := len(runes)

	out := make([]string, 0, n/s.ChunkSize+1)
	start := 0
	for start < n {
		end := start + s.ChunkSize
		if end >= n {
			end = n
		} else {
			end = s.cut(runes, start, end)
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			out = append(out, chunk)
		}
		if end >= n {
			break
		}

		next := end - s.Overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return out
}

// cut picks the boundary for a full window: the last occurrence of the
// highest-priority separator inside it, falling back to a hard cut at
// the window edge when the text has no separators at all.
func (s *Splitter) cut(runes []rune, start, limit int) int {
	window := string(runes[start:limit])
	for _, sep := range s.separators {
		if sep == "" {
			break
		}
		idx := strings.LastIndex(window, sep)
		if idx <= 0 {
			continue
		}
		cut := start + len([]rune(window[:idx])) + len([]rune(sep))
		if cut > start && cut <= limit {
			return cut
		}
	}
	return limit
}
