package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/drinkyouroj/webmdma-the-curtain-bot/sentry"
)

type FollowUpRequest struct {
	Token   string
	AppID   string
	Content string
	Flags   int
}

// SendFollowup posts a deferred-interaction followup over the webhook API.
func SendFollowup(request *FollowUpRequest) {
	payload := map[string]interface{}{
		"content": request.Content,
	}

	if request.Flags != 0 {
		payload["flags"] = request.Flags
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		sentry.ReportError(err)
		log.Errorf("Error marshalling payload: %v", err)
		return
	}

	resp, err := http.Post(
		"https://discord.com/api/v10/webhooks/"+request.AppID+"/"+request.Token,
		"application/json",
		bytes.NewBuffer(jsonPayload),
	)
	if err != nil {
		sentry.ReportError(err)
		log.Errorf("Error sending followup: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		sentry.ReportMessage(fmt.Sprintf("followup webhook returned %s", resp.Status))
		log.Errorf("Followup webhook returned %s", resp.Status)
	}
}

// SendChannelMessage sends a plain message to a channel over the gateway
// session.
func SendChannelMessage(session *discordgo.Session, channelID, content string) {
	if _, err := session.ChannelMessageSend(channelID, content); err != nil {
		sentry.ReportError(err)
		log.Errorf("Error sending channel message: %v", err)
	}
}
