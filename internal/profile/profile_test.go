package profile

import (
	"context"
	"testing"

	"github.com/Simplici0/solarquote/internal/db"
	"github.com/Simplici0/solarquote/internal/migrations"
)

func TestLoad_FallsBackToDefault(t *testing.T) {
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()
	if err := migrations.Up(database); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	p, err := Load(context.Background(), database)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p != Default {
		t.Fatalf("expected default profile, got %+v", p)
	}
}

func TestLoad_ReadsStoredRow(t *testing.T) {
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()
	if err := migrations.Up(database); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	_, err = database.Exec(`
		INSERT INTO business_profile (id, name, tagline, address, phone, email, jurisdiction)
		VALUES (1, 'Surya Power', 'Rooftop Solar', 'MG Road, Pune', '020 5555', 'hi@surya.in', 'Pune')
	`)
	if err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	p, err := Load(context.Background(), database)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Name != "Surya Power" || p.Jurisdiction != "Pune" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}
