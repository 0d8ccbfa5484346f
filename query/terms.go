package query

import (
	"regexp"
	"strings"
)

var (
	setLookupRe = regexp.MustCompile(`(?i)\b(?:what\s+was|what\s+did\s+they\s+play\s+in|show\s+me)?\s*(?:the\s+)?set\s*(\d+)\b`)
	encoreRe    = regexp.MustCompile(`(?i)\bencore\b`)

	// A single quote only opens a quoted term at the start of the text or
	// after whitespace. Possessive apostrophes ("Mike's Song") stay plain
	// text.
	quotedRe = regexp.MustCompile(`"([^"]+)"|(?:^|\s)'([^']+)'`)

	// Trailing qualifiers that scope a song question but are not part of
	// any song title.
	trailerRe = regexp.MustCompile(`(?i)\s+(?:in\s+set\b.*|at\s+th(?:at|e)\s+show\b.*)$`)

	fillerRe = regexp.MustCompile(`(?i)\b(?:did\s+(?:they|phish)\s+(?:play|bust\s+out)|played|play|was|were)\b`)

	termSeparatorRe = regexp.MustCompile(`(?i)\s+or\s+|\s+and\s+|[,/&|]`)
)

// Song-question triggers. Song matching only runs when one of these appears
// in the message; anything else falls through to the generic reply path.
var songIntentTriggers = []string{
	"did they play",
	"did phish play",
	"did they bust out",
}

// ParseSetLookup recognizes a request for a whole set or the encore and
// returns the canonical label ("Set 2", "Encore").
func ParseSetLookup(text string) (string, bool) {
	if m := setLookupRe.FindStringSubmatch(text); m != nil {
		return "Set " + m[1], true
	}
	if encoreRe.MatchString(text) {
		return "Encore", true
	}
	return "", false
}

// HasSongIntent reports whether the message asks about specific songs.
func HasSongIntent(text string) bool {
	lower := strings.ToLower(text)
	for _, trigger := range songIntentTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}

// ExtractTerms pulls the song query terms out of a message. Quoted
// substrings are taken verbatim, one term each; otherwise filler phrases
// are stripped and the remainder is split on "or"/"and"/","/"/"/"&"/"|".
// An unparseable message yields an empty slice, never an error.
func ExtractTerms(text string) []string {
	if matches := quotedRe.FindAllStringSubmatch(text, -1); len(matches) > 0 {
		terms := make([]string, 0, len(matches))
		for _, m := range matches {
			term := m[1]
			if term == "" {
				term = m[2]
			}
			if term = strings.TrimSpace(term); term != "" {
				terms = append(terms, term)
			}
		}
		return terms
	}

	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimSuffix(cleaned, "?")
	cleaned = trailerRe.ReplaceAllString(cleaned, "")
	cleaned = fillerRe.ReplaceAllString(cleaned, " ")

	var terms []string
	for _, segment := range termSeparatorRe.Split(cleaned, -1) {
		if segment = strings.TrimSpace(segment); segment != "" {
			terms = append(terms, segment)
		}
	}
	return terms
}
