package helpers

import (
	"context"
	"fmt"

	"github.com/drinkyouroj/webmdma-the-curtain-bot/config"
	"github.com/drinkyouroj/webmdma-the-curtain-bot/gemini"
)

// Fallbacks are static responses when Gemini is unavailable
var Fallbacks = map[string]string{
	"ask":      "My crystal ball is cloudy today. Try again in a bit.",
	"help":     "Try /setlist, /lastsong, /ask, or /band.",
	"greeting": "Hey there. Ask me about the latest show.",
	"unknown":  "Not sure what you're after. Ask me about a setlist, a set, or a song.",
}

// GenerateBotResponse produces a conversational reply for an intent,
// preferring Gemini and degrading to a static fallback.
func GenerateBotResponse(ctx context.Context, intent string, args ...interface{}) string {
	if !config.Config.Gemini.Enabled {
		return getFallback(intent)
	}

	var response string
	switch intent {
	case "help":
		response = gemini.Help(ctx, buildPrompt(intent, args))
	default:
		response = gemini.Answer(ctx, buildPrompt(intent, args))
	}
	if response == "" {
		return getFallback(intent)
	}
	return response
}

func getFallback(intent string) string {
	if fallback, ok := Fallbacks[intent]; ok {
		return fallback
	}
	return Fallbacks["unknown"]
}

func buildPrompt(intent string, args []interface{}) string {
	switch intent {
	case "ask":
		question := ""
		if len(args) > 0 && args[0] != nil {
			question = args[0].(string)
		}
		return question

	case "help":
		user := ""
		if len(args) > 0 && args[0] != nil {
			user = args[0].(string)
		}
		if user != "" {
			return fmt.Sprintf("User %s asked what you can do.", user)
		}
		return "A user asked what you can do."

	case "greeting":
		return "A user mentioned you without asking anything. Say hi and point them at the setlist features."

	default:
		return "A user sent a message you couldn't route. Nudge them toward asking about setlists or songs."
	}
}
