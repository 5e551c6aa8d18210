// Package profile reads the business details printed on every quotation.
package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Profile is the letterhead of the installer issuing quotations.
type Profile struct {
	Name         string
	Tagline      string
	Address      string
	Phone        string
	Email        string
	Jurisdiction string
}

// Default is used when no profile row exists yet.
var Default = Profile{
	Name:         "Jain Multiservice",
	Tagline:      "Solar Energy Solutions",
	Address:      "Shop No. 6, Ganesh Society in Front of Bus stand, Lonar",
	Phone:        "+91 99600 69017",
	Email:        "jainmultiservices1@gmail.com",
	Jurisdiction: "Solapur",
}

// Load returns the stored profile, or Default when the singleton row is missing.
func Load(ctx context.Context, db *sql.DB) (Profile, error) {
	var p Profile
	err := db.QueryRowContext(ctx, `
		SELECT name, tagline, address, phone, email, jurisdiction
		FROM business_profile
		WHERE id = 1
	`).Scan(&p.Name, &p.Tagline, &p.Address, &p.Phone, &p.Email, &p.Jurisdiction)
	if errors.Is(err, sql.ErrNoRows) {
		return Default, nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("query business_profile: %w", err)
	}
	return p, nil
}
