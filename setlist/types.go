package setlist

import "errors"

var (
	ErrContainerNotFound = errors.New("setlist container not found")
	ErrDateNotFound      = errors.New("setlist date not found")
	ErrNoSetsParsed      = errors.New("no sets could be parsed")
)

// ShowRecord identifies a single show. Date and Venue are display strings;
// Venue is empty when the page carries no venue heading, which is not an error.
type ShowRecord struct {
	Date  string
	Venue string
}

// LabeledText pairs a canonical set label with the raw song text that
// followed it in the markup. Order matches the document.
type LabeledText struct {
	Label string
	Text  string
}

// RawSetlistBlock is the extractor's output: show metadata plus the raw,
// still-dirty song text per set label, in document order.
type RawSetlistBlock struct {
	Date  string
	Venue string
	Sets  []LabeledText
}

// SetEntry is one performance segment with its songs in play order.
type SetEntry struct {
	Label string
	Songs []string
}

// Setlist is the normalized record for one show. Sets preserves the order
// labels were encountered in the markup. AllSongsOrdered concatenates the
// sets in that order with duplicate titles removed, first occurrence kept.
type Setlist struct {
	Show            ShowRecord
	Sets            []SetEntry
	AllSongsOrdered []string
}

// Set returns the entry for a canonical label ("Set 1", "Encore").
func (s *Setlist) Set(label string) (SetEntry, bool) {
	for _, entry := range s.Sets {
		if entry.Label == label {
			return entry, true
		}
	}
	return SetEntry{}, false
}

// LastSong returns the final entry of AllSongsOrdered.
func (s *Setlist) LastSong() (string, bool) {
	if len(s.AllSongsOrdered) == 0 {
		return "", false
	}
	return s.AllSongsOrdered[len(s.AllSongsOrdered)-1], true
}
