// Package db opens the MySQL connection and owns the schema.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"marketplace-backend/config"
)

// DSN builds a go-sql-driver DSN. Times are parsed into time.Time in UTC, and
// RowsAffected counts matched rows so idempotent updates still report a hit.
func DSN(cfg config.MySQL) string {
	return fmt.Sprintf("%s:%s@%s/%s?parseTime=true&loc=UTC&clientFoundRows=true", cfg.User, cfg.Password, cfg.Host, cfg.Database)
}

// Open connects and pings the database.
func Open(ctx context.Context, cfg config.MySQL) (*sql.DB, error) {
	conn, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	conn.SetMaxOpenConns(20)
	conn.SetMaxIdleConns(10)
	conn.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return conn, nil
}
