package db

import (
	"database/sql"
	"fmt"
)

const Schema = `
-- Create users table
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    national_id TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    role VARCHAR(10) NOT NULL DEFAULT 'user'
);

CREATE INDEX IF NOT EXISTS idx_users_national_id ON users (national_id);
CREATE INDEX IF NOT EXISTS idx_users_role ON users (role);

-- Create sessions table
CREATE TABLE IF NOT EXISTS sessions (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    session_id TEXT UNIQUE NOT NULL,
    expires_at TIMESTAMP NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_sessions_session_id ON sessions (session_id);

-- Create attendance table
CREATE TABLE IF NOT EXISTS attendance (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    timestamp TIMESTAMP NOT NULL DEFAULT now(),
    device_info TEXT NOT NULL,
    type VARCHAR(10) NOT NULL,
    latitude DOUBLE PRECISION NOT NULL,
    longitude DOUBLE PRECISION NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id)
);

-- Index on the date component only, used by the daily uniqueness checks
-- and the export range filter
CREATE INDEX IF NOT EXISTS idx_attendance_date_only ON attendance (date(timestamp));

-- At most one 'in' and one 'out' row per user per calendar day. Concurrent
-- requests that pass the read check both hit these; the loser gets a
-- unique violation instead of a duplicate row.
CREATE UNIQUE INDEX IF NOT EXISTS ux_attendance_daily_in
    ON attendance (user_id, date(timestamp)) WHERE type = 'in';
CREATE UNIQUE INDEX IF NOT EXISTS ux_attendance_daily_out
    ON attendance (user_id, date(timestamp)) WHERE type = 'out';
`

// InitSchema initializes the database schema
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	if err != nil {
		return fmt.Errorf("error initializing database schema: %w", err)
	}
	return nil
}
