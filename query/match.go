package query

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	log "github.com/sirupsen/logrus"

	"github.com/drinkyouroj/webmdma-the-curtain-bot/setlist"
)

const (
	// Tier-3 match threshold: similarity above this counts as a hit.
	fuzzyMatchThreshold = 0.8
	// Minimum similarity for a "did you mean" suggestion.
	suggestionThreshold = 0.6
)

// SongQuery is one query term in its three forms.
type SongQuery struct {
	Raw        string
	Normalized string
	Expanded   string
}

// Location is where a song landed: its set label and 1-based position
// within that set. Repeated plays in one set keep separate positions.
type Location struct {
	Label    string
	Position int
}

type MatchKind int

const (
	Found MatchKind = iota
	Suggested
	NotFound
)

// MatchResult is the outcome for one query term.
type MatchResult struct {
	Kind       MatchKind
	Queried    string
	Song       string     // set when Kind == Found
	Locations  []Location // set when Kind == Found
	Suggestion string     // set when Kind == Suggested
}

var punctuationRe = regexp.MustCompile(`[^a-z0-9\s]+`)

// normalizeTerm lowercases, strips punctuation and collapses whitespace.
func normalizeTerm(s string) string {
	s = strings.ToLower(s)
	s = punctuationRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// Expand builds the SongQuery for a raw term, replacing known shorthand
// with its canonical title.
func Expand(raw string) SongQuery {
	q := SongQuery{Raw: raw, Normalized: normalizeTerm(raw)}
	if full, ok := abbreviations[q.Normalized]; ok {
		q.Expanded = normalizeTerm(full)
		log.Debugf("Expanded %q to %q", q.Normalized, q.Expanded)
	} else {
		q.Expanded = q.Normalized
	}
	return q
}

// similarity is the normalized Levenshtein ratio: 1 - distance/maxLen,
// in [0, 1]. Chosen over Ratcliff/Obershelp so the 0.8 and 0.6 thresholds
// are reproducible from a single well-known distance.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}

// ResolveSetQuery recognizes a whole-set request in the message and returns
// the matching entry. The second return is false both when the message has
// no set intent and when the requested set is absent from the show; callers
// fall through to song matching or the generic reply path.
func ResolveSetQuery(sl *setlist.Setlist, text string) (setlist.SetEntry, bool) {
	label, ok := ParseSetLookup(text)
	if !ok {
		return setlist.SetEntry{}, false
	}
	return sl.Set(label)
}

// occurrence is one played song with its location.
type occurrence struct {
	song       string
	normalized string
	loc        Location
}

func occurrences(sl *setlist.Setlist) []occurrence {
	var occs []occurrence
	for _, entry := range sl.Sets {
		for i, song := range entry.Songs {
			occs = append(occs, occurrence{
				song:       song,
				normalized: normalizeTerm(song),
				loc:        Location{Label: entry.Label, Position: i + 1},
			})
		}
	}
	return occs
}

// ResolveSongQueries extracts the song terms from a message and matches each
// one against the setlist. Results preserve term order; an empty term list
// yields an empty result slice.
func ResolveSongQueries(sl *setlist.Setlist, text string) []MatchResult {
	terms := ExtractTerms(text)
	if len(terms) == 0 {
		return nil
	}

	occs := occurrences(sl)
	results := make([]MatchResult, 0, len(terms))
	for _, term := range terms {
		results = append(results, resolveTerm(occs, Expand(term)))
	}
	return results
}

// Matching tiers in precedence order; the first tier with any hit wins and
// every occurrence satisfying it is collected.
var tiers = []func(query, song string) bool{
	func(query, song string) bool { return query == song },
	func(query, song string) bool {
		return strings.Contains(song, query) || strings.Contains(query, song)
	},
	func(query, song string) bool { return similarity(query, song) > fuzzyMatchThreshold },
}

func resolveTerm(occs []occurrence, q SongQuery) MatchResult {
	// An all-punctuation term normalizes to nothing and would substring-match
	// every song.
	if q.Expanded == "" {
		return MatchResult{Kind: NotFound, Queried: q.Raw}
	}

	for _, tier := range tiers {
		var hits []occurrence
		for _, occ := range occs {
			if tier(q.Expanded, occ.normalized) {
				hits = append(hits, occ)
			}
		}
		if len(hits) == 0 {
			continue
		}
		result := MatchResult{Kind: Found, Queried: q.Raw, Song: hits[0].song}
		for _, hit := range hits {
			result.Locations = append(result.Locations, hit.loc)
		}
		return result
	}

	// No tier hit: fall back to the single closest song by similarity.
	best := ""
	bestScore := 0.0
	for _, occ := range occs {
		if score := similarity(q.Expanded, occ.normalized); score > bestScore {
			best, bestScore = occ.song, score
		}
	}
	if bestScore >= suggestionThreshold {
		log.Debugf("No match for %q, suggesting %q (similarity %.2f)", q.Raw, best, bestScore)
		return MatchResult{Kind: Suggested, Queried: q.Raw, Suggestion: best}
	}
	return MatchResult{Kind: NotFound, Queried: q.Raw}
}
