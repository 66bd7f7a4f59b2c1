package db

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id CHAR(26) PRIMARY KEY COMMENT 'ULID',
		name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(60) NOT NULL COMMENT 'bcrypt',
		role VARCHAR(16) NOT NULL DEFAULT 'seller',
		created_at DATETIME(3) NOT NULL,
		UNIQUE KEY uq_users_email (email)
	)`,
	`CREATE TABLE IF NOT EXISTS seller_profiles (
		id CHAR(26) PRIMARY KEY COMMENT 'ULID',
		user_id CHAR(26) NOT NULL,
		business_name VARCHAR(120) NOT NULL,
		state VARCHAR(32) NOT NULL COMMENT 'composite negotiation state',
		offer_rate DECIMAL(5,2) NULL COMMENT 'NULL until the first offer',
		offered_by CHAR(26) NULL,
		offered_at DATETIME(3) NULL,
		negotiation_round INT NOT NULL DEFAULT 0,
		counter_rate DECIMAL(5,2) NULL,
		counter_reason TEXT NULL,
		counter_submitted_at DATETIME(3) NULL,
		offer_rejection_reason TEXT NULL,
		responded_at DATETIME(3) NULL,
		commission_rate DECIMAL(5,2) NULL COMMENT 'effective rate once approved',
		reviewed_at DATETIME(3) NULL,
		reviewed_by CHAR(26) NULL,
		rejection_reason TEXT NULL,
		approved_at DATETIME(3) NULL,
		created_at DATETIME(3) NOT NULL,
		updated_at DATETIME(3) NOT NULL,
		UNIQUE KEY uq_seller_profiles_user (user_id),
		KEY idx_seller_profiles_state (state),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id CHAR(26) PRIMARY KEY COMMENT 'ULID',
		user_id CHAR(26) NOT NULL,
		type VARCHAR(64) NOT NULL,
		title VARCHAR(200) NOT NULL,
		message TEXT NOT NULL,
		data JSON NULL,
		read_at DATETIME(3) NULL,
		created_at DATETIME(3) NOT NULL,
		KEY idx_notifications_user (user_id, created_at),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id CHAR(26) PRIMARY KEY COMMENT 'ULID',
		seller_id CHAR(26) NOT NULL COMMENT 'seller profile id',
		name VARCHAR(200) NOT NULL,
		description TEXT NOT NULL,
		price INT NOT NULL,
		commission_rate DECIMAL(5,2) NOT NULL,
		commission_fee INT NOT NULL,
		seller_payout INT NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'on_sale',
		created_at DATETIME(3) NOT NULL,
		KEY idx_items_seller (seller_id),
		FOREIGN KEY (seller_id) REFERENCES seller_profiles(id) ON DELETE CASCADE
	)`,
}

// Migrate creates any missing tables. It is safe to run repeatedly.
func Migrate(ctx context.Context, conn *sql.DB) error {
	for i, q := range schema {
		if _, err := conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}
	return nil
}
