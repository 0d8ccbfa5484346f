package handlers

import (
	"fmt"
	"strings"

	"github.com/drinkyouroj/webmdma-the-curtain-bot/query"
	"github.com/drinkyouroj/webmdma-the-curtain-bot/setlist"
)

// Reply rendering lives beside the router: the core packages return
// structured results and everything markdown happens here.

func FormatSetlist(sl *setlist.Setlist) string {
	var sb strings.Builder
	sb.WriteString("**" + sl.Show.Date)
	if sl.Show.Venue != "" {
		sb.WriteString(" - " + sl.Show.Venue)
	}
	sb.WriteString("**\n")
	for _, entry := range sl.Sets {
		sb.WriteString(fmt.Sprintf("\n%s: %s", entry.Label, strings.Join(entry.Songs, ", ")))
	}
	return sb.String()
}

func FormatSet(entry setlist.SetEntry) string {
	return fmt.Sprintf("**%s**: %s", entry.Label, strings.Join(entry.Songs, ", "))
}

func FormatLastSong(sl *setlist.Setlist) string {
	song, ok := sl.LastSong()
	if !ok {
		return "I couldn't work out the last song from that setlist."
	}
	reply := fmt.Sprintf("The last song played was **%s** on %s", song, sl.Show.Date)
	if sl.Show.Venue != "" {
		reply += " at " + sl.Show.Venue
	}
	return reply
}

func FormatMatchResult(result query.MatchResult) string {
	switch result.Kind {
	case query.Found:
		locations := make([]string, 0, len(result.Locations))
		for _, loc := range result.Locations {
			locations = append(locations, fmt.Sprintf("%s (song %d)", loc.Label, loc.Position))
		}
		return fmt.Sprintf("**%s** was played in %s", result.Song, strings.Join(locations, ", "))
	case query.Suggested:
		return fmt.Sprintf("I couldn't find **%s**. Did you mean **%s**?", result.Queried, result.Suggestion)
	default:
		return fmt.Sprintf("**%s** wasn't played at that show", result.Queried)
	}
}

func FormatMatchResults(results []query.MatchResult) string {
	lines := make([]string, 0, len(results))
	for _, result := range results {
		lines = append(lines, FormatMatchResult(result))
	}
	return strings.Join(lines, "\n")
}

func FormatFetchFailure(band string) string {
	return fmt.Sprintf("Couldn't find or parse a setlist for **%s** right now", band)
}
