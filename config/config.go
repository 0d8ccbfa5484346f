package config

import (
	"os"
	"regexp"
	"strconv"
)

type ConfigStruct struct {
	Discord  DiscordConfig
	PhishNet PhishNetConfig
	Gemini   GeminiConfig
	Options  Options
}

type DiscordConfig struct {
	BotToken  string
	AppID     string
	PublicKey string
}

type PhishNetConfig struct {
	BaseURL        string
	DefaultBand    string
	TimeoutSeconds int
}

type GeminiConfig struct {
	Enabled bool
	APIKey  string
}

type Options struct {
	Port   string
	DBPath string
}

var Config *ConfigStruct

func NewConfig() {
	config := &ConfigStruct{
		Discord: DiscordConfig{
			BotToken:  os.Getenv("DISCORD_BOT_TOKEN"),
			AppID:     os.Getenv("DISCORD_APP_ID"),
			PublicKey: os.Getenv("DISCORD_PUBLIC_KEY"),
		},
		PhishNet: PhishNetConfig{
			BaseURL:        getBaseURL(),
			DefaultBand:    getDefaultBand(),
			TimeoutSeconds: getFetchTimeout(),
		},
		Gemini: GeminiConfig{
			Enabled: os.Getenv("GEMINI_ENABLED") == "true",
			APIKey:  os.Getenv("GEMINI_API_KEY"),
		},
		Options: Options{
			Port:   os.Getenv("PORT"),
			DBPath: os.Getenv("DB_PATH"),
		},
	}

	Config = config
}

func getBaseURL() string {
	url := os.Getenv("PHISHNET_BASE_URL")
	if url == "" {
		return "https://phish.net"
	}
	return url
}

var bandSlugRe = regexp.MustCompile(`^[a-z0-9-]+$`)

func getDefaultBand() string {
	band := os.Getenv("PHISHNET_DEFAULT_BAND")
	if band == "" || !bandSlugRe.MatchString(band) {
		return "phish"
	}
	return band
}

func getFetchTimeout() int {
	timeoutStr := os.Getenv("FETCH_TIMEOUT_SECONDS")
	if timeoutStr == "" {
		return 10
	}
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil || timeout <= 0 {
		return 10
	}
	if timeout > 60 {
		return 60 // Cap so a hung fetch can't stall a reply for minutes
	}
	return timeout
}
