package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aqlanhadi/pokertrack/analysis"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// insertTournament lists the stored export columns in analysis.Columns order,
// followed by issues. tournamentArgs follows the same order.
var insertTournament = func() string {
	var columns, params []string
	for _, column := range analysis.Columns {
		if sequenceColumns[column] {
			continue
		}
		columns = append(columns, column)
	}
	columns = append(columns, "issues")
	for i := range columns {
		params = append(params, fmt.Sprintf("$%d", i+1))
	}
	return fmt.Sprintf("INSERT INTO tournaments (%s) VALUES (%s)",
		strings.Join(columns, ", "), strings.Join(params, ", "))
}()

// TournamentExists checks if a tournament already exists using its natural key
func (db *DB) TournamentExists(ctx context.Context, tournamentID string) (bool, string, error) {
	return tournamentExists(ctx, db.Pool, tournamentID)
}

func tournamentExists(ctx context.Context, q querier, tournamentID string) (bool, string, error) {
	var id string
	err := q.QueryRow(ctx, `
		SELECT id FROM tournaments WHERE tournament_id = $1
	`, tournamentID).Scan(&id)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, "", nil
		}
		return false, "", fmt.Errorf("failed to check tournament: %w", err)
	}

	return true, id, nil
}

func tournamentArgs(row analysis.Row) ([]any, error) {
	issues := []byte("[]")
	if len(row.Issues) > 0 {
		var err error
		issues, err = json.Marshal(row.Issues)
		if err != nil {
			return nil, fmt.Errorf("failed to encode issues: %w", err)
		}
	}

	return []any{
		row.Source, row.TournamentID, row.TournamentName, row.TournamentGameType,
		row.BuyIn, row.TotalBuyIn, row.Prize, row.StartTime,
		row.EntryCount, row.Players, row.TotalPrizePool, row.Rank, row.RankPercent,
		string(row.BuyInCategory), string(row.RankPercentCategory), row.DayOfWeek, string(row.TimeBucket),
		row.Profit, row.ROI, issues,
	}, nil
}

// CreateTournaments bulk inserts rows, skipping tournament ids already stored
func (db *DB) CreateTournaments(ctx context.Context, rows []analysis.Row) (int, error) {
	return createTournaments(ctx, db.Pool, rows)
}

func createTournaments(ctx context.Context, q querier, rows []analysis.Row) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, row := range rows {
		args, err := tournamentArgs(row)
		if err != nil {
			return 0, err
		}
		batch.Queue(insertTournament+" ON CONFLICT (tournament_id) DO NOTHING", args...)
	}

	br := q.SendBatch(ctx, batch)
	defer br.Close()

	inserted := 0
	for range rows {
		tag, err := br.Exec()
		if err != nil {
			return inserted, fmt.Errorf("failed to insert tournament: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// DeleteTournament removes a tournament
func (db *DB) DeleteTournament(ctx context.Context, id string) error {
	return deleteTournament(ctx, db.Pool, id)
}

func deleteTournament(ctx context.Context, q querier, id string) error {
	_, err := q.Exec(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}
	return nil
}

// CountTournaments returns the number of stored tournaments
func (db *DB) CountTournaments(ctx context.Context) (int, error) {
	var n int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM tournaments`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count tournaments: %w", err)
	}
	return n, nil
}
