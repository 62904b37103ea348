package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		clerk_user_id TEXT UNIQUE NOT NULL,
		email TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id),
		name TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'CURRENT',
		balance NUMERIC(18,2) NOT NULL DEFAULT 0,
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id),
		account_id INT NOT NULL REFERENCES accounts(id),
		type TEXT NOT NULL,
		amount NUMERIC(18,2) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		transaction_date TIMESTAMPTZ NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'COMPLETED',
		is_recurring BOOLEAN NOT NULL DEFAULT FALSE,
		recurring_interval TEXT,
		next_recurring_date TIMESTAMPTZ,
		last_processed TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_account_date
		ON transactions (account_id, transaction_date)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_recurring
		ON transactions (is_recurring, next_recurring_date)`,
	`CREATE TABLE IF NOT EXISTS budgets (
		id SERIAL PRIMARY KEY,
		user_id INT UNIQUE NOT NULL REFERENCES users(id),
		amount NUMERIC(18,2) NOT NULL,
		last_alert_sent TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id),
		message TEXT NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS reports (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id),
		report_data JSONB NOT NULL,
		generated_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id SERIAL PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		type TEXT NOT NULL
	)`,
}

// RunMigrations создаёт недостающие таблицы при старте приложения.
func RunMigrations(pool *pgxpool.Pool) error {
	for _, stmt := range migrations {
		if _, err := pool.Exec(context.Background(), stmt); err != nil {
			return fmt.Errorf("ошибка миграции схемы: %v", err)
		}
	}
	return nil
}
