package handlers

// handlers are the functions that handle the interactions from discord
// they are responsible for parsing the interaction, verifying the request,
// and routing the question to the setlist pipeline or the Q&A fallback

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"github.com/drinkyouroj/webmdma-the-curtain-bot/config"
	"github.com/drinkyouroj/webmdma-the-curtain-bot/discord"
	"github.com/drinkyouroj/webmdma-the-curtain-bot/helpers"
	"github.com/drinkyouroj/webmdma-the-curtain-bot/sentryhelper"
	"github.com/drinkyouroj/webmdma-the-curtain-bot/setlist"
)

type Response struct {
	Type int          `json:"type"`
	Data ResponseData `json:"data"`
}

type ResponseData struct {
	Content string `json:"content"`
	Flags   int    `json:"flags"`
}

type InteractionOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type InteractionData struct {
	ID      string              `json:"id"`
	Name    string              `json:"name"`
	Type    int                 `json:"type"`
	Options []InteractionOption `json:"options"`
}

type UserData struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
}

type MemberData struct {
	User UserData `json:"user"`
	Nick *string  `json:"nick"`
}

type Interaction struct {
	ApplicationID string          `json:"application_id"`
	Type          int             `json:"type"`
	Data          InteractionData `json:"data"`
	Token         string          `json:"token"`
	Member        MemberData      `json:"member"`
	Version       int             `json:"version"`
	GuildID       string          `json:"guild_id"`
}

// MarkupSource supplies one complete markup document for the most recent
// show of a band.
type MarkupSource interface {
	FetchLatestShowMarkup(ctx context.Context, band string) (string, error)
}

// BandPrefs stores each guild's default band.
type BandPrefs interface {
	SetGuildBand(guildID, band string) error
	GetGuildBand(guildID string) (string, error)
}

type Manager struct {
	AppID     string
	PublicKey string
	Source    MarkupSource
	Prefs     BandPrefs
}

func NewManager(appID string, source MarkupSource, prefs BandPrefs) *Manager {
	return &Manager{
		AppID:     appID,
		PublicKey: config.Config.Discord.PublicKey,
		Source:    source,
		Prefs:     prefs,
	}
}

// fetchSetlist runs the full pipeline: fetch markup, extract, normalize.
func (manager *Manager) fetchSetlist(ctx context.Context, band string) (*setlist.Setlist, error) {
	markup, err := manager.Source.FetchLatestShowMarkup(ctx, band)
	if err != nil {
		return nil, err
	}
	block, err := setlist.Extract(markup)
	if err != nil {
		return nil, err
	}
	sl := setlist.Normalize(block)
	if len(sl.Sets) == 0 {
		return nil, setlist.ErrNoSetsParsed
	}
	return sl, nil
}

// bandFor resolves the band for one request: an explicit slug beats the
// guild's stored default, which beats the configured default.
func (manager *Manager) bandFor(guildID, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if manager.Prefs != nil && guildID != "" {
		if band, err := manager.Prefs.GetGuildBand(guildID); err != nil {
			log.Warnf("Error reading guild band preference: %v", err)
		} else if band != "" {
			return band
		}
	}
	return config.Config.PhishNet.DefaultBand
}

func optionValue(interaction *Interaction, name string) string {
	for _, opt := range interaction.Data.Options {
		if opt.Name == name {
			return opt.Value
		}
	}
	return ""
}

func (manager *Manager) ParseInteraction(body []byte) (*Interaction, error) {
	var interaction Interaction
	if err := json.Unmarshal(body, &interaction); err != nil {
		log.Errorf("Error unmarshalling interaction: %v", err)
		return nil, err
	}
	return &interaction, nil
}

func (manager *Manager) handlePing() Response {
	return Response{
		Type: 4,
		Data: ResponseData{
			Content: "Pong! 🎣",
		},
	}
}

func (manager *Manager) handleHelp() Response {
	return Response{
		Type: 4,
		Data: ResponseData{
			Content: "**🐟 CurtainBot Commands**\n\n" +
				"**`/setlist [band]`**\n" +
				"> Show the latest setlist (band: phish, trey, mike, tab)\n\n" +
				"**`/lastsong [band]`**\n" +
				"> Show the last song played at the latest show\n\n" +
				"**`/ask <question>`**\n" +
				"> Ask a Phish question\n\n" +
				"**`/band <slug>`**\n" +
				"> Set this server's default band\n\n" +
				"You can also just mention me: *did they play \"Tweezer\"?*, *what was set 2?*",
		},
	}
}

// handleSetlist defers the reply and resolves it in the background; the
// fetch can take longer than Discord's 3 second interaction window.
func (manager *Manager) handleSetlist(ctx context.Context, interaction *Interaction) Response {
	go manager.fetchAndFollowup(ctx, interaction, func(sl *setlist.Setlist) string {
		return FormatSetlist(sl)
	})
	return Response{Type: 5}
}

func (manager *Manager) handleLastSong(ctx context.Context, interaction *Interaction) Response {
	go manager.fetchAndFollowup(ctx, interaction, func(sl *setlist.Setlist) string {
		return FormatLastSong(sl)
	})
	return Response{Type: 5}
}

func (manager *Manager) fetchAndFollowup(ctx context.Context, interaction *Interaction, render func(*setlist.Setlist) string) {
	band := manager.bandFor(interaction.GuildID, optionValue(interaction, "band"))

	sentryhelper.AddBreadcrumb(ctx, &sentry.Breadcrumb{
		Category: "setlist",
		Message:  "fetching latest show for " + band,
	})

	sl, err := manager.fetchSetlist(ctx, band)
	if err != nil {
		log.Errorf("Error fetching setlist for %s: %v", band, err)
		sentryhelper.CaptureException(ctx, err)
		manager.sendFollowup(interaction, FormatFetchFailure(band), true)
		return
	}

	manager.sendFollowup(interaction, render(sl), false)
}

func (manager *Manager) handleAsk(ctx context.Context, interaction *Interaction) Response {
	question := optionValue(interaction, "question")
	if question == "" {
		return Response{
			Type: 4,
			Data: ResponseData{
				Content: "Ask me something!",
				Flags:   64,
			},
		}
	}

	go func() {
		answer := helpers.GenerateBotResponse(ctx, "ask", question)
		manager.sendFollowup(interaction, answer, false)
	}()
	return Response{Type: 5}
}

func (manager *Manager) handleBand(interaction *Interaction) Response {
	band := optionValue(interaction, "band")
	if !knownBands[band] {
		return Response{
			Type: 4,
			Data: ResponseData{
				Content: "I don't know that one. Try phish, trey, mike, or tab.",
				Flags:   64,
			},
		}
	}

	if manager.Prefs == nil {
		return Response{
			Type: 4,
			Data: ResponseData{
				Content: "Preferences aren't available right now",
				Flags:   64,
			},
		}
	}

	if err := manager.Prefs.SetGuildBand(interaction.GuildID, band); err != nil {
		log.Errorf("Error saving guild band: %v", err)
		return Response{
			Type: 4,
			Data: ResponseData{
				Content: "Couldn't save that preference",
				Flags:   64,
			},
		}
	}

	return Response{
		Type: 4,
		Data: ResponseData{
			Content: "Default band set to **" + band + "**",
		},
	}
}

func (manager *Manager) sendFollowup(interaction *Interaction, content string, ephemeral bool) {
	request := &discord.FollowUpRequest{
		Token:   interaction.Token,
		AppID:   manager.AppID,
		Content: content,
	}
	if ephemeral {
		request.Flags = 64
	}
	discord.SendFollowup(request)
}

func (manager *Manager) HandleInteraction(interaction *Interaction) (response Response) {
	// Defer a recover function that will catch any panics
	defer func() {
		if err := recover(); err != nil {
			log.Errorf("Panic in command handling: %v", err)
			response = Response{
				Type: 4,
				Data: ResponseData{
					Content: "An error occurred while processing your command",
					Flags:   64, // Ephemeral message
				},
			}
		}
	}()

	ctx, transaction := sentryhelper.StartCommandTransaction(
		context.Background(),
		interaction.Data.Name,
		interaction.GuildID,
		interaction.Member.User.ID,
	)
	defer transaction.Finish()

	log.Infof("Received command: %s", interaction.Data.Name)
	switch interaction.Data.Name {
	case "ping":
		return manager.handlePing()
	case "help":
		return manager.handleHelp()
	case "setlist":
		return manager.handleSetlist(ctx, interaction)
	case "lastsong":
		return manager.handleLastSong(ctx, interaction)
	case "ask":
		return manager.handleAsk(ctx, interaction)
	case "band":
		return manager.handleBand(interaction)
	default:
		return Response{
			Type: 4,
			Data: ResponseData{
				Content: "Sorry, I don't know how to handle this type of interaction",
				Flags:   64,
			},
		}
	}
}

func (manager *Manager) VerifyDiscordRequest(signature, timestamp string, body []byte) bool {
	pubKeyBytes, err := hex.DecodeString(manager.PublicKey)
	if err != nil {
		log.Errorf("Error decoding public key: %v", err)
		return false
	}

	signatureBytes, err := hex.DecodeString(signature)
	if err != nil {
		log.Errorf("Error decoding signature: %v", err)
		return false
	}

	message := []byte(timestamp + string(body))
	return ed25519.Verify(pubKeyBytes, message, signatureBytes)
}
