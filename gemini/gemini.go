package gemini

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/drinkyouroj/webmdma-the-curtain-bot/config"
)

func generateResponse(ctx context.Context, prompt genai.Text) string {
	if !config.Config.Gemini.Enabled {
		return ""
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.Config.Gemini.APIKey))
	if err != nil {
		log.Errorf("failed to create gemini client: %v", err)
		return ""
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash")
	resp, err := model.GenerateContent(ctx, prompt)
	if err != nil {
		log.Errorf("failed to generate content: %v", err)
		return ""
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				sb.WriteString(fmt.Sprint(part))
			}
		}
	}
	return sb.String()
}

// Answer handles open-ended questions that have no setlist intent. Returns
// "" when Gemini is disabled or errored; callers fall back to a canned reply.
func Answer(ctx context.Context, question string) string {
	if !config.Config.Gemini.Enabled {
		return ""
	}

	instructions := genai.Text(`
Instructions: You are "CurtainBot", a Discord bot for Phish fans.
You are a knowledgeable assistant focused on Phish-related information: the band, their music, their performances and their history.
Keep responses short, a few sentences at most.
All responses are rendered as Discord messages, so use the proper markdown formatting when applicable.
Question: ` + question)

	return generateResponse(ctx, instructions)
}

// Help answers a request for usage help with the command list in context.
func Help(ctx context.Context, prompt string) string {
	if !config.Config.Gemini.Enabled {
		return ""
	}

	instructions := genai.Text(`
Instructions: You are "CurtainBot", a Discord bot that reports Phish setlists.
You are responding to a user's request for help. Be helpful, informative, and friendly.
All responses are rendered to markdown, so use the proper markdown formatting when applicable.
Keep things short, like 1-2 sentences, then the command list. No emojis!
Here are the commands that users can use:
/setlist - show the latest setlist, takes an optional band (phish, trey, mike, tab)
/lastsong - show the last song played at the latest show
/ask - ask a Phish question
/band - set this server's default band
/help - view the help menu
Prompt: ` + prompt)

	return generateResponse(ctx, instructions)
}
