package setlist

import (
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
)

var (
	tagRe = regexp.MustCompile(`<[^>]*>`)

	// Segment separators of equal weight: commas, transition arrows, and
	// bare ">" transition markers. "->" must be tried before ">".
	separatorRe = regexp.MustCompile(`\s*(?:,|->|>)\s*`)

	// The entities phish.net actually emits in song text. The "&gt;"
	// replacement runs after tag stripping so escaped transition markers
	// become real separators before splitting.
	entityReplacer = strings.NewReplacer(
		"&amp;", "&",
		"&gt;", ">",
		"&lt;", "<",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	)
)

// Normalize converts a raw setlist block into the final Setlist: raw song
// text split into per-set song sequences plus the deduplicated global song
// order. Labels whose text yields no songs are dropped entirely.
func Normalize(block *RawSetlistBlock) *Setlist {
	sl := &Setlist{
		Show: ShowRecord{Date: block.Date, Venue: block.Venue},
	}

	seen := make(map[string]bool)
	for _, lt := range block.Sets {
		songs := SplitSongs(lt.Text)
		if len(songs) == 0 {
			log.Debugf("Label %q had no songs after splitting, dropping", lt.Label)
			continue
		}
		sl.Sets = append(sl.Sets, SetEntry{Label: lt.Label, Songs: songs})
		for _, song := range songs {
			if seen[song] {
				continue
			}
			seen[song] = true
			sl.AllSongsOrdered = append(sl.AllSongsOrdered, song)
		}
	}

	return sl
}

// SplitSongs strips residual markup from one label's raw text and splits it
// into trimmed song tokens. Empty tokens are discarded.
func SplitSongs(raw string) []string {
	text := tagRe.ReplaceAllString(raw, "")
	text = entityReplacer.Replace(text)

	var songs []string
	for _, token := range separatorRe.Split(text, -1) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		songs = append(songs, token)
	}
	return songs
}
