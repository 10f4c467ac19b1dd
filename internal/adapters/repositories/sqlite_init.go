package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createUsersQuery := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		cnic TEXT NOT NULL UNIQUE,
		contact TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		is_premium INTEGER NOT NULL DEFAULT 0,
		cart TEXT NOT NULL DEFAULT '[]',
		pharmacy TEXT
	);
	`

	createContactsQuery := `
	CREATE TABLE IF NOT EXISTS emergency_contacts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		full_name TEXT NOT NULL,
		phone TEXT NOT NULL,
		blood_group TEXT NOT NULL DEFAULT '',
		medical_history TEXT NOT NULL DEFAULT '',
		additional_comments TEXT NOT NULL DEFAULT '',
		preferred_hospital TEXT NOT NULL DEFAULT '',
		preferred_ambulance TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	createContactIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_emergency_contacts_user
	ON emergency_contacts(user_id);
	`

	statements := []string{
		createUsersQuery,
		createContactsQuery,
		createContactIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type UserSeed struct {
	Name     string `json:"name"`
	CNIC     string `json:"cnic"`
	Contact  string `json:"contact"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Populate the database with demo users from a JSON file. Existing rows
// keyed by the same email are replaced; passwords are hashed on the way in.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed users: read %q: %w", jsonPath, err)
	}

	var data []UserSeed
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed users: parse json: %w", err)
	}

	rows := make([]UserSeed, 0, len(data))
	for i, item := range data {
		if strings.TrimSpace(item.Email) == "" {
			return fmt.Errorf("seed users: item at index %d: email cannot be empty", i+1)
		}
		if strings.TrimSpace(item.CNIC) == "" {
			return fmt.Errorf("seed users: item at index %d: cnic cannot be empty", i+1)
		}
		rows = append(rows, item)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed users: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO users (
		id,
		name,
		cnic,
		contact,
		email,
		password_hash
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed users: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, u := range rows {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed users: hash password for %q: %w", u.Email, err)
		}

		if _, err := stmt.Exec(uuid.New().String(), u.Name, u.CNIC, u.Contact, u.Email, string(hash)); err != nil {
			return fmt.Errorf("seed users: insert email=%q: %w", u.Email, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed users: commit tx: %w", err)
	}

	return nil
}
