package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the schema if it does not exist. Every table carries
// a scope column: the class under which all records are namespaced.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			scope VARCHAR(100) NOT NULL,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			scope VARCHAR(100) NOT NULL,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			cost DECIMAL(10,2) NOT NULL CHECK (cost > 0),
			deadline TIMESTAMPTZ NOT NULL,
			category VARCHAR(20) NOT NULL DEFAULT 'normal',
			payment_options TEXT[] NOT NULL DEFAULT '{}',
			qr_code_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			scope VARCHAR(100) NOT NULL,
			roll_no VARCHAR(50) NOT NULL,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			class VARCHAR(100) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (scope, roll_no)
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			scope VARCHAR(100) NOT NULL,
			student_id UUID NOT NULL,
			student_name VARCHAR(255) NOT NULL,
			student_roll VARCHAR(50) NOT NULL,
			event_id UUID NOT NULL,
			event_name VARCHAR(255) NOT NULL,
			amount DECIMAL(10,2) NOT NULL,
			payment_method VARCHAR(20) NOT NULL,
			transaction_id VARCHAR(100) NOT NULL,
			proof_url TEXT NOT NULL DEFAULT '',
			status VARCHAR(30) NOT NULL DEFAULT 'pending',
			payment_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_event ON payments (scope, event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_student ON payments (scope, student_id)`,
		`CREATE TABLE IF NOT EXISTS print_distributions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			scope VARCHAR(100) NOT NULL,
			student_id UUID NOT NULL,
			student_name VARCHAR(255) NOT NULL,
			student_roll VARCHAR(50) NOT NULL,
			event_id UUID NOT NULL,
			event_name VARCHAR(255) NOT NULL,
			distributed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_distributions_event ON print_distributions (scope, event_id)`,
		`CREATE TABLE IF NOT EXISTS qrcodes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			scope VARCHAR(100) NOT NULL,
			name VARCHAR(255) NOT NULL,
			image_url TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
