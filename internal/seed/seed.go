package seed

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/solarquote/internal/profile"
)

// Config contains the values required by startup seed.
type Config struct {
	Profile profile.Profile
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way.
func Run(db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureProfile(tx, withDefaults(cfg.Profile), &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

// withDefaults fills blank profile fields from profile.Default.
func withDefaults(p profile.Profile) profile.Profile {
	d := profile.Default
	if p.Name == "" {
		p.Name = d.Name
	}
	if p.Tagline == "" {
		p.Tagline = d.Tagline
	}
	if p.Address == "" {
		p.Address = d.Address
	}
	if p.Phone == "" {
		p.Phone = d.Phone
	}
	if p.Email == "" {
		p.Email = d.Email
	}
	if p.Jurisdiction == "" {
		p.Jurisdiction = d.Jurisdiction
	}
	return p
}

func ensureProfile(tx *sql.Tx, want profile.Profile, stats *Stats) error {
	var current profile.Profile
	err := tx.QueryRow(`
		SELECT name, tagline, address, phone, email, jurisdiction
		FROM business_profile
		WHERE id = 1
	`).Scan(&current.Name, &current.Tagline, &current.Address, &current.Phone, &current.Email, &current.Jurisdiction)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.Exec(`
			INSERT INTO business_profile (id, name, tagline, address, phone, email, jurisdiction)
			VALUES (1, ?, ?, ?, ?, ?, ?)
		`, want.Name, want.Tagline, want.Address, want.Phone, want.Email, want.Jurisdiction); err != nil {
			return fmt.Errorf("insert business profile: %w", err)
		}
		stats.Inserts++
		return nil
	case err != nil:
		return fmt.Errorf("query business profile: %w", err)
	}

	if current == want {
		return nil
	}

	if _, err := tx.Exec(`
		UPDATE business_profile
		SET
			name = ?,
			tagline = ?,
			address = ?,
			phone = ?,
			email = ?,
			jurisdiction = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`, want.Name, want.Tagline, want.Address, want.Phone, want.Email, want.Jurisdiction); err != nil {
		return fmt.Errorf("update business profile: %w", err)
	}
	stats.Updates++
	return nil
}
