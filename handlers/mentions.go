package handlers

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/drinkyouroj/webmdma-the-curtain-bot/discord"
	"github.com/drinkyouroj/webmdma-the-curtain-bot/helpers"
	"github.com/drinkyouroj/webmdma-the-curtain-bot/query"
	"github.com/drinkyouroj/webmdma-the-curtain-bot/setlist"
)

// knownBands are the phish.net setlist slugs the bot will fetch.
var knownBands = map[string]bool{
	"phish": true,
	"trey":  true,
	"mike":  true,
	"tab":   true,
}

// HandleMention is the gateway MessageCreate handler. It only reacts to
// messages that mention the bot, strips the mention, and routes the rest.
func (manager *Manager) HandleMention(s *discordgo.Session, msg *discordgo.MessageCreate) {
	if msg.Author == nil || s.State.User == nil || msg.Author.ID == s.State.User.ID {
		return
	}

	mentioned := false
	for _, user := range msg.Mentions {
		if user.ID == s.State.User.ID {
			mentioned = true
			break
		}
	}
	if !mentioned {
		return
	}

	content := stripMention(msg.Content, s.State.User.ID)
	log.Debugf("Mention from %s: %q", msg.Author.Username, content)

	reply := manager.RouteMessage(context.Background(), msg.GuildID, content)
	if reply != "" {
		discord.SendChannelMessage(s, msg.ChannelID, reply)
	}
}

func stripMention(content, botID string) string {
	content = strings.ReplaceAll(content, "<@"+botID+">", "")
	content = strings.ReplaceAll(content, "<@!"+botID+">", "")
	return strings.TrimSpace(content)
}

// RouteMessage resolves a free-text question to a reply. Routing order:
// song questions, whole-set lookups, last-song questions, full-setlist
// requests, then the open-domain fallback. Song matching runs before set
// lookup so "did they play Tweezer in set 2" is a song question, not a
// request for set 2.
func (manager *Manager) RouteMessage(ctx context.Context, guildID, content string) string {
	if content == "" {
		return helpers.GenerateBotResponse(ctx, "greeting")
	}

	band := manager.bandFor(guildID, sniffBand(content))
	lower := strings.ToLower(content)

	// One fetch per message, run lazily so pure-chat questions skip it.
	var cached *setlist.Setlist
	fetch := func() (*setlist.Setlist, error) {
		if cached != nil {
			return cached, nil
		}
		sl, err := manager.fetchSetlist(ctx, band)
		if err != nil {
			log.Errorf("Error fetching setlist for %s: %v", band, err)
			return nil, err
		}
		cached = sl
		return sl, nil
	}

	if query.HasSongIntent(content) {
		sl, err := fetch()
		if err != nil {
			return FormatFetchFailure(band)
		}
		results := query.ResolveSongQueries(sl, content)
		if len(results) > 0 {
			return FormatMatchResults(results)
		}
		// Intent trigger but no usable terms, fall through to the generic path
	}

	if _, ok := query.ParseSetLookup(content); ok {
		sl, err := fetch()
		if err != nil {
			return FormatFetchFailure(band)
		}
		if entry, found := query.ResolveSetQuery(sl, content); found {
			return FormatSet(entry)
		}
		// Requested set absent from the show, fall through
	}

	if containsAny(lower, "last song", "latest song", "most recent song") {
		sl, err := fetch()
		if err != nil {
			return FormatFetchFailure(band)
		}
		return FormatLastSong(sl)
	}

	if containsAny(lower, "setlist", "set", "show") {
		sl, err := fetch()
		if err != nil {
			return FormatFetchFailure(band)
		}
		return FormatSetlist(sl)
	}

	if containsWord(lower, "help") {
		return helpers.GenerateBotResponse(ctx, "help")
	}

	return helpers.GenerateBotResponse(ctx, "ask", content)
}

// sniffBand spots an explicit band in the message text.
func sniffBand(content string) string {
	lower := strings.ToLower(content)
	for _, band := range []string{"trey", "mike", "tab"} {
		if containsWord(lower, band) {
			return band
		}
	}
	return ""
}

func containsAny(text string, phrases ...string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

func containsWord(text, word string) bool {
	for _, field := range strings.Fields(text) {
		if strings.Trim(field, ".,!?") == word {
			return true
		}
	}
	return false
}
