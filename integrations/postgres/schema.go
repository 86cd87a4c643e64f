package postgres

import (
	"context"
	"fmt"
)

// sequenceColumns are export columns that depend on the position of a row in
// one extraction run. They are not stored since imports accumulate across runs.
var sequenceColumns = map[string]bool{
	"cumulative_profit": true,
	"record_index":      true,
}

// One flat row per tournament, mirroring the exported table except for
// sequenceColumns.
const ddl = `
CREATE TABLE IF NOT EXISTS tournaments (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    tournament_id VARCHAR(64) NOT NULL,
    source VARCHAR(255) NOT NULL,
    tournament_name VARCHAR(255) NOT NULL,
    tournament_game_type VARCHAR(255) NOT NULL,
    buy_in NUMERIC(18,4) NOT NULL,
    total_buy_in NUMERIC(18,4) NOT NULL,
    prize NUMERIC(18,4) NOT NULL,
    start_time TIMESTAMPTZ,
    entry_count INTEGER NOT NULL DEFAULT 1,
    players INTEGER NOT NULL DEFAULT 0,
    total_prize_pool NUMERIC(18,4) NOT NULL,
    rank VARCHAR(16) NOT NULL,
    rank_percent DOUBLE PRECISION NOT NULL DEFAULT 0,
    buy_in_category VARCHAR(16) NOT NULL,
    rank_percent_category VARCHAR(16) NOT NULL DEFAULT '',
    day_of_week VARCHAR(16) NOT NULL DEFAULT '',
    time_bucket VARCHAR(16) NOT NULL DEFAULT '',
    profit NUMERIC(18,4) NOT NULL,
    roi DOUBLE PRECISION NOT NULL DEFAULT 0,
    issues JSONB DEFAULT '[]',
    created_at TIMESTAMPTZ DEFAULT NOW(),

    -- Natural key for deduplication
    UNIQUE(tournament_id)
);

CREATE INDEX IF NOT EXISTS idx_tournaments_start_time ON tournaments(start_time);
CREATE INDEX IF NOT EXISTS idx_tournaments_game_type ON tournaments(tournament_game_type);
`

// migrateDDL adds new columns to existing tables
const migrateDDL = `
-- Add issues column if not exists
DO $$ BEGIN
    IF NOT EXISTS (SELECT 1 FROM information_schema.columns
                   WHERE table_name = 'tournaments' AND column_name = 'issues') THEN
        ALTER TABLE tournaments ADD COLUMN issues JSONB DEFAULT '[]';
    END IF;
END $$;
`

// EnsureSchema creates tables if they don't exist and runs migrations
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Run migrations for existing tables
	_, err = db.Pool.Exec(ctx, migrateDDL)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
