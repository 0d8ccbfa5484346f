package discord

import (
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/drinkyouroj/webmdma-the-curtain-bot/config"
)

// NewSession opens a gateway session with message-content intents and the
// given MessageCreate handler attached, so passive mentions reach the router.
func NewSession(onMessage func(*discordgo.Session, *discordgo.MessageCreate)) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + config.Config.Discord.BotToken)
	if err != nil {
		log.Errorf("Error creating Discord session: %v", err)
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent
	if onMessage != nil {
		session.AddHandler(onMessage)
	}
	if err := session.Open(); err != nil {
		log.Errorf("Error opening Discord session: %v", err)
		return nil, err
	}
	return session, nil
}
