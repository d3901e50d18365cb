package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/securekeep/config"
	"github.com/oksasatya/securekeep/pkg/crypto"
	"github.com/oksasatya/securekeep/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@securekeep.dev"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	engine, err := crypto.NewEngine(crypto.DeriveKey(cfg.EncryptionKey))
	if err != nil {
		log.Fatalf("failed to init cipher engine: %v", err)
	}

	samples := []struct {
		website  string
		username string
		password string
		note     string
	}{
		{"https://github.com", "demo", "gh-demo-pass", "personal account"},
		{"https://mail.example.com", "demo@securekeep.dev", "mail-demo-pass", ""},
	}
	for _, s := range samples {
		ct, err := engine.Encrypt(s.password)
		if err != nil {
			log.Fatalf("failed to encrypt sample: %v", err)
		}
		if _, err := db.Exec(`
			INSERT INTO credential_entries (owner_id, website, username, password, note)
			VALUES ($1, $2, $3, $4, $5)
		`, id, s.website, s.username, ct, s.note); err != nil {
			log.Fatalf("failed to seed entry: %v", err)
		}
		fmt.Printf("seeded entry: website=%s username=%s\n", s.website, s.username)
	}
}
