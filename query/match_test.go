package query

import (
	"reflect"
	"testing"

	"github.com/drinkyouroj/webmdma-the-curtain-bot/setlist"
)

func testSetlist() *setlist.Setlist {
	return setlist.Normalize(&setlist.RawSetlistBlock{
		Date:  "Sunday, July 27, 2025",
		Venue: "United Center, Chicago, IL",
		Sets: []setlist.LabeledText{
			{Label: "Set 1", Text: "Llama, Bathtub Gin -> Tweezer"},
			{Label: "Set 2", Text: "Fluffhead, You Enjoy Myself"},
			{Label: "Encore", Text: "Tweezer Reprise"},
		},
	})
}

func TestResolveSongQueries_VerbatimTitlesFound(t *testing.T) {
	sl := testSetlist()
	for _, entry := range sl.Sets {
		for _, song := range entry.Songs {
			results := ResolveSongQueries(sl, `"`+song+`"`)
			if len(results) != 1 {
				t.Fatalf("query %q: got %d results", song, len(results))
			}
			result := results[0]
			if result.Kind != Found {
				t.Errorf("query %q: kind = %v; want Found", song, result.Kind)
				continue
			}
			found := false
			for _, loc := range result.Locations {
				if loc.Label == entry.Label {
					found = true
				}
			}
			if !found {
				t.Errorf("query %q: locations %v missing label %q", song, result.Locations, entry.Label)
			}
		}
	}
}

func TestResolveSongQueries_QuotedScenario(t *testing.T) {
	sl := setlist.Normalize(&setlist.RawSetlistBlock{
		Date: "d",
		Sets: []setlist.LabeledText{
			{Label: "Set 1", Text: "Llama, Bathtub Gin -> Tweezer"},
			{Label: "Set 2", Text: "Fluffhead"},
		},
	})

	results := ResolveSongQueries(sl, `did they play "Tweezer" or "Fluffhead"?`)
	if len(results) != 2 {
		t.Fatalf("got %d results; want 2", len(results))
	}

	if results[0].Kind != Found || results[0].Song != "Tweezer" {
		t.Errorf("results[0] = %+v; want Found Tweezer", results[0])
	}
	if want := []Location{{Label: "Set 1", Position: 3}}; !reflect.DeepEqual(results[0].Locations, want) {
		t.Errorf("Tweezer locations = %v; want %v", results[0].Locations, want)
	}

	if results[1].Kind != Found || results[1].Song != "Fluffhead" {
		t.Errorf("results[1] = %+v; want Found Fluffhead", results[1])
	}
	if want := []Location{{Label: "Set 2", Position: 1}}; !reflect.DeepEqual(results[1].Locations, want) {
		t.Errorf("Fluffhead locations = %v; want %v", results[1].Locations, want)
	}
}

func TestResolveSongQueries_AbbreviationExpansion(t *testing.T) {
	sl := testSetlist()
	results := ResolveSongQueries(sl, `"yem"`)
	if len(results) != 1 || results[0].Kind != Found {
		t.Fatalf("results = %+v; want one Found", results)
	}
	if results[0].Song != "You Enjoy Myself" {
		t.Errorf("Song = %q; want %q", results[0].Song, "You Enjoy Myself")
	}
}

func TestResolveSongQueries_FuzzySuggestion(t *testing.T) {
	sl := setlist.Normalize(&setlist.RawSetlistBlock{
		Date: "d",
		Sets: []setlist.LabeledText{
			{Label: "Set 1", Text: "Llama, Tweezer"},
			{Label: "Set 2", Text: "Harry Hood"},
		},
	})

	// "tweeezor" is two edits from "tweezer" (similarity 0.75): below the
	// 0.8 match tier, above the 0.6 suggestion floor, and not a substring.
	results := ResolveSongQueries(sl, `"tweeezor"`)
	if len(results) != 1 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Kind != Suggested {
		t.Fatalf("kind = %v; want Suggested (got %+v)", results[0].Kind, results[0])
	}
	if results[0].Suggestion != "Tweezer" {
		t.Errorf("Suggestion = %q; want %q", results[0].Suggestion, "Tweezer")
	}
}

func TestResolveSongQueries_NotFound(t *testing.T) {
	sl := testSetlist()
	results := ResolveSongQueries(sl, `"zzzzzzzzzzzz"`)
	if len(results) != 1 || results[0].Kind != NotFound {
		t.Fatalf("results = %+v; want one NotFound", results)
	}
}

func TestResolveSongQueries_RepeatedSongPositions(t *testing.T) {
	sl := setlist.Normalize(&setlist.RawSetlistBlock{
		Date: "d",
		Sets: []setlist.LabeledText{
			{Label: "Set 1", Text: "Tweezer, Ghost, Tweezer"},
			{Label: "Set 2", Text: "Tweezer"},
		},
	})

	results := ResolveSongQueries(sl, `"Tweezer"`)
	if len(results) != 1 || results[0].Kind != Found {
		t.Fatalf("results = %+v", results)
	}
	want := []Location{
		{Label: "Set 1", Position: 1},
		{Label: "Set 1", Position: 3},
		{Label: "Set 2", Position: 1},
	}
	if !reflect.DeepEqual(results[0].Locations, want) {
		t.Errorf("Locations = %v; want %v", results[0].Locations, want)
	}
}

func TestResolveSongQueries_EmptyTerms(t *testing.T) {
	sl := testSetlist()
	if results := ResolveSongQueries(sl, "did they play ?"); len(results) != 0 {
		t.Errorf("got %d results; want 0", len(results))
	}
}

func TestResolveSetQuery(t *testing.T) {
	sl := testSetlist()

	tests := []struct {
		name  string
		text  string
		label string
		ok    bool
	}{
		{"set_2", "what was set 2", "Set 2", true},
		{"encore", "encore", "Encore", true},
		{"absent_set", "set 3", "", false},
		{"no_intent", "tell me a story", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok := ResolveSetQuery(sl, tt.text)
			if ok != tt.ok {
				t.Fatalf("ResolveSetQuery(%q) ok = %v; want %v", tt.text, ok, tt.ok)
			}
			if ok && entry.Label != tt.label {
				t.Errorf("label = %q; want %q", entry.Label, tt.label)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	tests := []struct {
		raw        string
		normalized string
		expanded   string
	}{
		{"YEM!", "yem", "you enjoy myself"},
		{"bag", "bag", "acdc bag"},
		{"Tweezer", "tweezer", "tweezer"},
	}
	for _, tt := range tests {
		q := Expand(tt.raw)
		if q.Normalized != tt.normalized || q.Expanded != tt.expanded {
			t.Errorf("Expand(%q) = %+v; want normalized %q expanded %q", tt.raw, q, tt.normalized, tt.expanded)
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		min  float64
		max  float64
	}{
		{"tweezer", "tweezer", 1.0, 1.0},
		{"tweezr", "tweezer", 0.8, 0.99},
		{"llama", "fluffhead", 0.0, 0.4},
		{"", "", 1.0, 1.0},
	}
	for _, tt := range tests {
		got := similarity(tt.a, tt.b)
		if got < tt.min || got > tt.max {
			t.Errorf("similarity(%q, %q) = %.3f; want in [%.2f, %.2f]", tt.a, tt.b, got, tt.min, tt.max)
		}
	}
}
