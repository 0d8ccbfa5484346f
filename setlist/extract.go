package setlist

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

// Container selectors tried in order; the shape of the setlist page has
// drifted over time, so the first selection with any content wins.
var containerSelectors = []string{
	"div.setlist",
	"div.setlist-body",
	"article.setlist",
}

var dateSelectors = []string{
	"span.setlist-date",
	"h1.setlist-header",
	".setlist-date",
}

var labelRe = regexp.MustCompile(`(?i)\b(set\s*\d+|encore(?:\s*\d+)?)\b\s*:?`)

// Extract locates the setlist container in one show page and pulls out the
// date, the venue (optional) and the raw song text per set label.
func Extract(markup string) (*RawSetlistBlock, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}

	container := findContainer(doc)
	if container == nil {
		return nil, ErrContainerNotFound
	}

	date, ok := findDate(container)
	if !ok {
		return nil, ErrDateNotFound
	}

	block := &RawSetlistBlock{
		Date:  date,
		Venue: findVenue(doc, container),
	}

	seen := make(map[string]bool)
	container.Find("p").Each(func(i int, s *goquery.Selection) {
		raw, err := s.Html()
		if err != nil {
			log.Tracef("Skipping paragraph %d: %v", i, err)
			return
		}
		for _, lt := range splitLabeledText(raw) {
			if seen[lt.Label] {
				log.Debugf("Duplicate label %q in markup, keeping first occurrence", lt.Label)
				continue
			}
			seen[lt.Label] = true
			block.Sets = append(block.Sets, lt)
		}
	})

	if len(block.Sets) == 0 {
		return nil, ErrNoSetsParsed
	}

	return block, nil
}

func findContainer(doc *goquery.Document) *goquery.Selection {
	for _, sel := range containerSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			log.Debugf("Found setlist container via %q", sel)
			return s
		}
		log.Tracef("No setlist container matched %q", sel)
	}
	return nil
}

func findDate(container *goquery.Selection) (string, bool) {
	for _, sel := range dateSelectors {
		s := container.Find(sel).First()
		if s.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(s.Text())
		if text == "" {
			continue
		}
		return reformatDate(text), true
	}
	return "", false
}

// reformatDate turns "PHISH, SUNDAY 07/27/2025" into "Sunday, July 27, 2025".
// The day token is whatever follows the first comma. When its trailing token
// is not a parseable calendar date the raw text is returned as-is; date
// prettying must never fail the extraction.
func reformatDate(text string) string {
	day := text
	if _, rest, found := strings.Cut(text, ","); found {
		day = strings.TrimSpace(rest)
	}
	fields := strings.Fields(day)
	if len(fields) == 0 {
		return day
	}
	parsed, err := time.Parse("01/02/2006", fields[len(fields)-1])
	if err != nil {
		log.Tracef("Date token %q not a calendar date, keeping raw text", fields[len(fields)-1])
		return day
	}
	return parsed.Format("Monday, January 2, 2006")
}

// findVenue looks for a secondary heading shaped "BAND @ Venue, City, ST".
// Venue is opportunistic; missing is not a failure.
func findVenue(doc *goquery.Document, container *goquery.Selection) string {
	var venue string
	for _, scope := range []*goquery.Selection{container, doc.Selection} {
		scope.Find("h2, h3, span.setlist-venue").EachWithBreak(func(i int, s *goquery.Selection) bool {
			text := strings.TrimSpace(s.Text())
			if !strings.Contains(text, "@") {
				return true
			}
			_, after, _ := strings.Cut(text, "@")
			venue = strings.TrimSpace(after)
			return false
		})
		if venue != "" {
			return venue
		}
	}
	return ""
}

// splitLabeledText scans one paragraph's inner HTML for label markers and
// carves out the span between each label and the next as that label's raw
// song text. Paragraphs without any label marker are ignored.
func splitLabeledText(raw string) []LabeledText {
	matches := labelRe.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		return nil
	}

	out := make([]LabeledText, 0, len(matches))
	for i, m := range matches {
		end := len(raw)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		out = append(out, LabeledText{
			Label: canonicalLabel(raw[m[2]:m[3]]),
			Text:  strings.TrimSpace(raw[m[1]:end]),
		})
	}
	return out
}

var digitsRe = regexp.MustCompile(`\d+`)

// canonicalLabel maps a raw marker ("SET 1", "encore") to its canonical
// form ("Set 1", "Encore"). Spacing and case are insignificant on input.
func canonicalLabel(raw string) string {
	lower := strings.ToLower(raw)
	digits := digitsRe.FindString(lower)
	if strings.HasPrefix(lower, "set") {
		return "Set " + digits
	}
	if digits != "" {
		return "Encore " + digits
	}
	return "Encore"
}
