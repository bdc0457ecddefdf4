package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver
)

// DB is the global database connection pool.
var DB *sql.DB

// InitDB opens the SQLite database at dbPath and ensures the schema exists.
// The parent directory is created if needed.
func InitDB(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Ping the database to verify the connection.
	if err = db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createServersTable(db); err != nil {
		db.Close()
		return fmt.Errorf("failed to create servers table: %w", err)
	}

	DB = db
	log.Println("Successfully connected to the database at", dbPath)
	return nil
}

// createServersTable creates the 'servers' table if it doesn't exist.
func createServersTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS servers (
        guild_id TEXT PRIMARY KEY,
        server_name TEXT,
        library_channel_id TEXT,
        library_forum_id TEXT,
        suggestion_channel_id TEXT,
        priorities_forum_id TEXT,
        master_role_id TEXT,
        report_channel_id TEXT
    );`
	_, err := db.Exec(query)
	return err
}
