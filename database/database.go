package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

type Database struct {
	db *sql.DB
}

// New creates a new Database instance. dbPath defaults to ./data/curtainbot.db.
func New(dbPath string) (*Database, error) {
	if dbPath == "" {
		dbPath = "./data/curtainbot.db"
	}

	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	d := &Database{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Infof("Database initialized at %s", dbPath)
	return d, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS guild_prefs (
			guild_id TEXT PRIMARY KEY,
			band TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}

// SetGuildBand stores a guild's default band slug.
func (d *Database) SetGuildBand(guildID, band string) error {
	_, err := d.db.Exec(
		`INSERT INTO guild_prefs (guild_id, band, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(guild_id) DO UPDATE SET band = excluded.band, updated_at = excluded.updated_at`,
		guildID, band, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to set guild band: %w", err)
	}
	return nil
}

// GetGuildBand returns a guild's default band slug, or "" when unset.
func (d *Database) GetGuildBand(guildID string) (string, error) {
	var band string
	err := d.db.QueryRow(`SELECT band FROM guild_prefs WHERE guild_id = ?`, guildID).Scan(&band)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get guild band: %w", err)
	}
	return band, nil
}
