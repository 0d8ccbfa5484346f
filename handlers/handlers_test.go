package handlers

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/drinkyouroj/webmdma-the-curtain-bot/config"
	"github.com/drinkyouroj/webmdma-the-curtain-bot/helpers"
)

const samplePage = `
<div class="setlist">
  <span class="setlist-date">PHISH, SUNDAY 07/27/2025</span>
  <h2>PHISH @ United Center, Chicago, IL</h2>
  <p>SET 1: Llama, Bathtub Gin -&gt; Tweezer</p>
  <p>SET 2: Fluffhead</p>
  <p>ENCORE: Tweezer Reprise</p>
</div>`

type fakeSource struct {
	markup string
	err    error
	band   string
}

func (f *fakeSource) FetchLatestShowMarkup(ctx context.Context, band string) (string, error) {
	f.band = band
	return f.markup, f.err
}

type fakePrefs struct {
	bands map[string]string
}

func (f *fakePrefs) SetGuildBand(guildID, band string) error {
	f.bands[guildID] = band
	return nil
}

func (f *fakePrefs) GetGuildBand(guildID string) (string, error) {
	return f.bands[guildID], nil
}

func newTestManager(t *testing.T, source MarkupSource) *Manager {
	t.Helper()
	t.Setenv("GEMINI_ENABLED", "")
	t.Setenv("PHISHNET_DEFAULT_BAND", "")
	config.NewConfig()
	return &Manager{AppID: "app", PublicKey: "", Source: source}
}

func TestRouteMessage_SongQuery(t *testing.T) {
	manager := newTestManager(t, &fakeSource{markup: samplePage})

	reply := manager.RouteMessage(context.Background(), "guild", `did they play "Tweezer" or "Fluffhead"?`)
	if !strings.Contains(reply, "**Tweezer** was played in Set 1 (song 3)") {
		t.Errorf("reply missing Tweezer line: %q", reply)
	}
	if !strings.Contains(reply, "**Fluffhead** was played in Set 2 (song 1)") {
		t.Errorf("reply missing Fluffhead line: %q", reply)
	}
}

func TestRouteMessage_SongQuerySuggestion(t *testing.T) {
	manager := newTestManager(t, &fakeSource{markup: samplePage})

	reply := manager.RouteMessage(context.Background(), "guild", `did they play "tweeezor"?`)
	if !strings.Contains(reply, "Did you mean **Tweezer**?") {
		t.Errorf("reply = %q; want a Tweezer suggestion", reply)
	}
}

func TestRouteMessage_SetLookup(t *testing.T) {
	manager := newTestManager(t, &fakeSource{markup: samplePage})

	tests := []struct {
		name string
		text string
		want string
	}{
		{"set_2", "what was set 2?", "**Set 2**: Fluffhead"},
		{"encore", "what was the encore?", "**Encore**: Tweezer Reprise"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := manager.RouteMessage(context.Background(), "guild", tt.text); got != tt.want {
				t.Errorf("RouteMessage(%q) = %q; want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestRouteMessage_AbsentSetFallsThrough(t *testing.T) {
	manager := newTestManager(t, &fakeSource{markup: samplePage})

	// No Set 3 at the show; the "set" keyword still yields the full setlist
	reply := manager.RouteMessage(context.Background(), "guild", "what was set 3?")
	if !strings.Contains(reply, "Set 1: Llama, Bathtub Gin, Tweezer") {
		t.Errorf("reply = %q; want full setlist", reply)
	}
}

func TestRouteMessage_LastSong(t *testing.T) {
	manager := newTestManager(t, &fakeSource{markup: samplePage})

	reply := manager.RouteMessage(context.Background(), "guild", "what was the last song?")
	want := "The last song played was **Tweezer Reprise** on Sunday, July 27, 2025 at United Center, Chicago, IL"
	if reply != want {
		t.Errorf("reply = %q; want %q", reply, want)
	}
}

func TestRouteMessage_FullSetlist(t *testing.T) {
	manager := newTestManager(t, &fakeSource{markup: samplePage})

	reply := manager.RouteMessage(context.Background(), "guild", "setlist please")
	if !strings.Contains(reply, "**Sunday, July 27, 2025 - United Center, Chicago, IL**") {
		t.Errorf("reply missing header: %q", reply)
	}
	if !strings.Contains(reply, "Encore: Tweezer Reprise") {
		t.Errorf("reply missing encore: %q", reply)
	}
}

func TestRouteMessage_FetchFailure(t *testing.T) {
	manager := newTestManager(t, &fakeSource{err: errors.New("boom")})

	reply := manager.RouteMessage(context.Background(), "guild", "setlist?")
	if !strings.Contains(reply, "Couldn't find or parse a setlist for **phish**") {
		t.Errorf("reply = %q; want fetch failure", reply)
	}
}

func TestRouteMessage_GenericFallback(t *testing.T) {
	manager := newTestManager(t, &fakeSource{markup: samplePage})

	reply := manager.RouteMessage(context.Background(), "guild", "tell me about gamehendge")
	if reply != helpers.Fallbacks["ask"] {
		t.Errorf("reply = %q; want static ask fallback", reply)
	}
}

func TestRouteMessage_BandSniffing(t *testing.T) {
	source := &fakeSource{markup: samplePage}
	manager := newTestManager(t, source)

	manager.RouteMessage(context.Background(), "guild", "show me the trey setlist")
	if source.band != "trey" {
		t.Errorf("fetched band = %q; want trey", source.band)
	}
}

func TestBandFor_GuildPreference(t *testing.T) {
	manager := newTestManager(t, &fakeSource{markup: samplePage})
	manager.Prefs = &fakePrefs{bands: map[string]string{"guild-a": "mike"}}

	if got := manager.bandFor("guild-a", ""); got != "mike" {
		t.Errorf("bandFor = %q; want mike", got)
	}
	if got := manager.bandFor("guild-b", ""); got != "phish" {
		t.Errorf("bandFor = %q; want phish default", got)
	}
	if got := manager.bandFor("guild-a", "tab"); got != "tab" {
		t.Errorf("bandFor = %q; want explicit tab", got)
	}
}

func TestHandleBand(t *testing.T) {
	manager := newTestManager(t, &fakeSource{markup: samplePage})
	prefs := &fakePrefs{bands: map[string]string{}}
	manager.Prefs = prefs

	interaction := &Interaction{
		GuildID: "guild-a",
		Data: InteractionData{
			Name:    "band",
			Options: []InteractionOption{{Name: "band", Value: "trey"}},
		},
	}
	response := manager.handleBand(interaction)
	if response.Type != 4 || !strings.Contains(response.Data.Content, "trey") {
		t.Errorf("response = %+v", response)
	}
	if prefs.bands["guild-a"] != "trey" {
		t.Errorf("stored band = %q; want trey", prefs.bands["guild-a"])
	}

	bad := &Interaction{
		GuildID: "guild-a",
		Data: InteractionData{
			Name:    "band",
			Options: []InteractionOption{{Name: "band", Value: "zeppelin"}},
		},
	}
	response = manager.handleBand(bad)
	if response.Data.Flags != 64 {
		t.Errorf("expected ephemeral rejection, got %+v", response)
	}
}

func TestVerifyDiscordRequest(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}

	manager := &Manager{PublicKey: hex.EncodeToString(pub)}

	timestamp := "1700000000"
	body := []byte(`{"type":1}`)
	signature := ed25519.Sign(priv, []byte(timestamp+string(body)))

	if !manager.VerifyDiscordRequest(hex.EncodeToString(signature), timestamp, body) {
		t.Error("valid signature rejected")
	}
	if manager.VerifyDiscordRequest(hex.EncodeToString(signature), "1700000001", body) {
		t.Error("tampered timestamp accepted")
	}
	if manager.VerifyDiscordRequest("zz", timestamp, body) {
		t.Error("malformed signature accepted")
	}
}

func TestHandleInteraction_UnknownCommand(t *testing.T) {
	manager := newTestManager(t, &fakeSource{markup: samplePage})

	response := manager.HandleInteraction(&Interaction{
		Data: InteractionData{Name: "purge"},
	})
	if response.Type != 4 || response.Data.Flags != 64 {
		t.Errorf("response = %+v; want ephemeral unknown-command reply", response)
	}
}
