package config

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func InitDB() (*sql.DB, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			display_name VARCHAR(255) NOT NULL,
			gender VARCHAR(50),
			invite_code VARCHAR(12) UNIQUE NOT NULL,
			totp_secret VARCHAR(255),
			totp_enabled BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID REFERENCES users(id) ON DELETE CASCADE,
			refresh_token VARCHAR(500) UNIQUE NOT NULL,
			expires_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS couples (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			relationship_start_date DATE NOT NULL DEFAULT CURRENT_DATE,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		// UNIQUE(user_id): a user belongs to at most one couple, enforced
		// at the schema level and not just by lookup order.
		`CREATE TABLE IF NOT EXISTS couple_members (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			couple_id UUID REFERENCES couples(id) ON DELETE CASCADE,
			user_id UUID UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			joined_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS couple_invitations (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			sender_user_id UUID REFERENCES users(id) ON DELETE CASCADE,
			receiver_user_id UUID REFERENCES users(id) ON DELETE CASCADE,
			message TEXT,
			status VARCHAR(20) DEFAULT 'pending',
			couple_id UUID REFERENCES couples(id) ON DELETE SET NULL,
			created_at TIMESTAMP DEFAULT NOW(),
			responded_at TIMESTAMP
		)`,

		// Monetary amounts are integer cents. Balance arithmetic never
		// touches floating point.
		`CREATE TABLE IF NOT EXISTS expenses (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			couple_id UUID REFERENCES couples(id) ON DELETE CASCADE,
			user_id UUID REFERENCES users(id),
			amount_cents BIGINT NOT NULL CHECK (amount_cents > 0),
			description TEXT NOT NULL,
			expense_date DATE NOT NULL DEFAULT CURRENT_DATE,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS loans (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			couple_id UUID REFERENCES couples(id) ON DELETE CASCADE,
			lender_user_id UUID REFERENCES users(id),
			borrower_user_id UUID REFERENCES users(id),
			amount_cents BIGINT NOT NULL CHECK (amount_cents > 0),
			description TEXT,
			loan_date DATE NOT NULL DEFAULT CURRENT_DATE,
			settled BOOLEAN DEFAULT FALSE,
			settled_at TIMESTAMP,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS loan_payments (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			loan_id UUID REFERENCES loans(id) ON DELETE CASCADE,
			couple_id UUID REFERENCES couples(id) ON DELETE CASCADE,
			payer_user_id UUID REFERENCES users(id),
			amount_cents BIGINT NOT NULL CHECK (amount_cents > 0),
			notes TEXT,
			payment_date DATE NOT NULL DEFAULT CURRENT_DATE,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS todo_items (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			couple_id UUID REFERENCES couples(id) ON DELETE CASCADE,
			created_by_user_id UUID REFERENCES users(id),
			title TEXT NOT NULL,
			description TEXT,
			target_date DATE,
			target_time VARCHAR(8),
			status VARCHAR(20) DEFAULT 'todo',
			completed BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS cycle_phases (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID REFERENCES users(id) ON DELETE CASCADE,
			couple_id UUID REFERENCES couples(id) ON DELETE CASCADE,
			phase_type VARCHAR(50) NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS intimacy_events (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			couple_id UUID REFERENCES couples(id) ON DELETE CASCADE,
			created_by_user_id UUID REFERENCES users(id),
			event_date DATE NOT NULL,
			used_condom BOOLEAN NOT NULL,
			notes TEXT,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS contraceptive_events (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			couple_id UUID REFERENCES couples(id) ON DELETE CASCADE,
			user_id UUID REFERENCES users(id),
			method VARCHAR(100) NOT NULL,
			event_date DATE NOT NULL,
			notes TEXT,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_couple_members_couple_id ON couple_members(couple_id)`,
		`CREATE INDEX IF NOT EXISTS idx_invitations_receiver ON couple_invitations(receiver_user_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_invitations_sender ON couple_invitations(sender_user_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_couple_date ON expenses(couple_id, expense_date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_loans_couple_date ON loans(couple_id, loan_date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_loan_payments_loan_id ON loan_payments(loan_id)`,
		`CREATE INDEX IF NOT EXISTS idx_todo_items_couple_id ON todo_items(couple_id)`,
		`CREATE INDEX IF NOT EXISTS idx_cycle_phases_couple_id ON cycle_phases(couple_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}
