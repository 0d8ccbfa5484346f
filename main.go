package main

import (
	"net/http"
	"time"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	appConfig "github.com/drinkyouroj/webmdma-the-curtain-bot/config"
	"github.com/drinkyouroj/webmdma-the-curtain-bot/database"
	"github.com/drinkyouroj/webmdma-the-curtain-bot/discord"
	"github.com/drinkyouroj/webmdma-the-curtain-bot/handlers"
	"github.com/drinkyouroj/webmdma-the-curtain-bot/phishnet"
	"github.com/drinkyouroj/webmdma-the-curtain-bot/sentry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warnf("Error loading .env file: %v", err)
	}

	log.SetFormatter(&nested.Formatter{
		HideKeys:        true,
		TimestampFormat: time.RFC3339,
	})

	appConfig.NewConfig()
	sentry.Init()

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	db, err := database.New(appConfig.Config.Options.DBPath)
	if err != nil {
		log.Warnf("Running without guild preferences: %v", err)
		db = nil
	} else {
		defer db.Close()
	}

	source := phishnet.New(
		appConfig.Config.PhishNet.BaseURL,
		time.Duration(appConfig.Config.PhishNet.TimeoutSeconds)*time.Second,
	)

	manager := handlers.NewManager(appConfig.Config.Discord.AppID, source, prefsOrNil(db))

	session, err := discord.NewSession(manager.HandleMention)
	if err != nil {
		return err
	}
	defer session.Close()

	router := gin.Default()
	router.Use(sentry.GetSentryGin())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	router.POST("/discord/interactions", func(c *gin.Context) {
		signature := c.GetHeader("X-Signature-Ed25519")
		timestamp := c.GetHeader("X-Signature-Timestamp")

		bodyBytes, err := c.GetRawData()
		if err != nil {
			log.Errorf("Error reading body: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
			return
		}

		if !manager.VerifyDiscordRequest(signature, timestamp, bodyBytes) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid request signature"})
			return
		}

		interaction, err := manager.ParseInteraction(bodyBytes)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse interaction"})
			return
		}

		// Discord's URL verification ping
		if interaction.Type == 1 {
			c.JSON(http.StatusOK, gin.H{"type": 1})
			return
		}

		response := manager.HandleInteraction(interaction)
		c.JSON(http.StatusOK, response)
	})

	port := appConfig.Config.Options.Port
	if port == "" {
		port = "8080"
	}
	log.Infof("Starting server on :%s", port)
	return http.ListenAndServe(":"+port, router)
}

func prefsOrNil(db *database.Database) handlers.BandPrefs {
	if db == nil {
		return nil
	}
	return db
}
