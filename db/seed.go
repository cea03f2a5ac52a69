package db

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// SeedData provisions the initial admin account. User provisioning is
// otherwise an out-of-band process; nothing happens unless a seed password
// is configured.
func SeedData(db *sql.DB, adminNationalID, adminPassword string) error {
	if adminPassword == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing seed password: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO users (national_id, password_hash, role) VALUES ($1, $2, 'admin')
		 ON CONFLICT (national_id) DO NOTHING`,
		adminNationalID, string(hash),
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error seeding admin user: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}
