package colour

import (
	"cmp"
	"encoding/json"
	"iter"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// FrequencyEntry is a distinct colour and the number of tiles using it.
type FrequencyEntry struct {
	Colour RGB
	Count  int
}

// FrequencyIndex counts tile colours, ordered by descending count.
// Equal counts keep the order in which colours were first seen.
type FrequencyIndex struct {
	entries []FrequencyEntry
	index   map[RGB]int
	total   int
}

// NewFrequencyIndex builds a frequency index from a sequence of colours.
func NewFrequencyIndex(colours iter.Seq[RGB]) *FrequencyIndex {
	fi := &FrequencyIndex{index: make(map[RGB]int)}

	positions := make(map[RGB]int)
	for c := range colours {
		if i, ok := positions[c]; ok {
			fi.entries[i].Count++
		} else {
			positions[c] = len(fi.entries)
			fi.entries = append(fi.entries, FrequencyEntry{Colour: c, Count: 1})
		}
		fi.total++
	}

	slices.SortStableFunc(fi.entries, func(a, b FrequencyEntry) int {
		return cmp.Compare(b.Count, a.Count)
	})

	for i, e := range fi.entries {
		fi.index[e.Colour] = i
	}
	return fi
}

// Len returns the number of distinct colours.
func (fi *FrequencyIndex) Len() int {
	return len(fi.entries)
}

// Total returns the number of colours accumulated.
func (fi *FrequencyIndex) Total() int {
	return fi.total
}

// Count returns how many times c was seen.
func (fi *FrequencyIndex) Count(c RGB) int {
	i, ok := fi.index[c]
	if !ok {
		return 0
	}
	return fi.entries[i].Count
}

// Entries returns a copy of the ordered entries.
func (fi *FrequencyIndex) Entries() []FrequencyEntry {
	return slices.Clone(fi.entries)
}

// Top returns at most n of the most frequent entries.
func (fi *FrequencyIndex) Top(n int) []FrequencyEntry {
	return slices.Clone(fi.entries[:min(max(n, 0), len(fi.entries))])
}

// All returns an iterator over colours and counts in descending count order.
func (fi *FrequencyIndex) All() iter.Seq2[RGB, int] {
	return func(yield func(RGB, int) bool) {
		for _, e := range fi.entries {
			if !yield(e.Colour, e.Count) {
				return
			}
		}
	}
}

// Entropy returns the Shannon entropy of the colour distribution in bits.
// A single-colour image has entropy 0.
func (fi *FrequencyIndex) Entropy() float64 {
	if fi.total == 0 {
		return 0
	}
	p := make([]float64, len(fi.entries))
	for i, e := range fi.entries {
		p[i] = float64(e.Count) / float64(fi.total)
	}
	return stat.Entropy(p) / math.Ln2
}

// FrequencyJSON represents one frequency entry in JSON format.
type FrequencyJSON struct {
	Key   string `json:"key"`
	Hex   string `json:"hex"`
	RGB   RGB    `json:"rgb"`
	Count int    `json:"count"`
}

// FrequencyIndexJSON represents the index in JSON format.
type FrequencyIndexJSON struct {
	Total   int             `json:"total"`
	Entropy float64         `json:"entropy_bits"`
	Colours []FrequencyJSON `json:"colors"`
}

// ToJSON converts the index to JSON format.
func (fi *FrequencyIndex) ToJSON() ([]byte, error) {
	colours := make([]FrequencyJSON, len(fi.entries))
	for i, e := range fi.entries {
		colours[i] = FrequencyJSON{
			Key:   e.Colour.Key(),
			Hex:   e.Colour.Hex(),
			RGB:   e.Colour,
			Count: e.Count,
		}
	}

	return json.MarshalIndent(FrequencyIndexJSON{
		Total:   fi.total,
		Entropy: fi.Entropy(),
		Colours: colours,
	}, "", "  ")
}
