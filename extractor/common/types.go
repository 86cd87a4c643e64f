package common

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Unknown is the default for text fields that could not be extracted.
const Unknown = "Unknown"

// Field names, shared by issues, exports and the database schema.
const (
	FieldTournamentID       = "tournament_id"
	FieldTournamentName     = "tournament_name"
	FieldTournamentGameType = "tournament_game_type"
	FieldBuyIn              = "buy_in"
	FieldTotalBuyIn         = "total_buy_in"
	FieldPrize              = "prize"
	FieldStartTime          = "start_time"
	FieldEntryCount         = "entry_count"
	FieldPlayers            = "players"
	FieldTotalPrizePool     = "total_prize_pool"
	FieldRank               = "rank"
	FieldRankPercent        = "rank_percent"
)

// TournamentReport is the normalized content of one tournament summary.
// Amounts are expressed in the reference currency.
type TournamentReport struct {
	Source             string          `json:"source"`
	TournamentID       string          `json:"tournament_id"`
	TournamentName     string          `json:"tournament_name"`
	TournamentGameType string          `json:"tournament_game_type"`
	BuyIn              decimal.Decimal `json:"buy_in"`
	TotalBuyIn         decimal.Decimal `json:"total_buy_in"`
	Prize              decimal.Decimal `json:"prize"`
	StartTime          *time.Time      `json:"start_time,omitempty"`
	EntryCount         int             `json:"entry_count"`
	Players            int             `json:"players"`
	TotalPrizePool     decimal.Decimal `json:"total_prize_pool"`
	Rank               string          `json:"rank"`
	RankPercent        float64         `json:"rank_percent"`
	Issues             []FieldIssue    `json:"issues,omitempty"`
}

// FieldIssue records a field that fell back to its default.
type FieldIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// RankNumber returns the finishing position when the rank is known.
func (r TournamentReport) RankNumber() (int, bool) {
	n, err := strconv.Atoi(r.Rank)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Cashed reports whether the run won any money.
func (r TournamentReport) Cashed() bool {
	return r.Prize.IsPositive()
}

// HasIssue reports whether the given field was defaulted.
func (r TournamentReport) HasIssue(field string) bool {
	for _, issue := range r.Issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}
