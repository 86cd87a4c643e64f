package gg_summary

import (
	"time"

	"github.com/aqlanhadi/pokertrack/extractor/common"
	"github.com/shopspring/decimal"
)

// Fields holds the raw, possibly defaulted, values of one summary.
type Fields struct {
	TournamentID       string
	TournamentName     string
	TournamentGameType string
	BuyIn              decimal.Decimal
	Prize              decimal.Decimal
	StartTime          *time.Time
	EntryCount         int
	Players            int
	TotalPrizePool     decimal.Decimal
	Rank               string
	Issues             []common.FieldIssue
}

// Assemble derives total buy-in and rank percentile and returns the record.
// It never fails: every derived value is computable from defaulted inputs.
func Assemble(source string, f Fields) common.TournamentReport {
	entryCount := f.EntryCount
	if entryCount < 1 {
		entryCount = 1
	}

	report := common.TournamentReport{
		Source:             source,
		TournamentID:       orUnknown(f.TournamentID),
		TournamentName:     orUnknown(f.TournamentName),
		TournamentGameType: orUnknown(f.TournamentGameType),
		BuyIn:              f.BuyIn,
		TotalBuyIn:         f.BuyIn.Mul(decimal.NewFromInt(int64(entryCount))),
		Prize:              f.Prize,
		StartTime:          f.StartTime,
		EntryCount:         entryCount,
		Players:            f.Players,
		TotalPrizePool:     f.TotalPrizePool,
		Rank:               orUnknown(f.Rank),
		Issues:             f.Issues,
	}
	report.RankPercent = rankPercent(report)

	return report
}

// rankPercent is only meaningful for cashed runs. A prize that failed to
// parse is indistinguishable from a run that did not cash.
func rankPercent(r common.TournamentReport) float64 {
	if !r.Cashed() || r.Players <= 0 {
		return 0
	}
	rank, ok := r.RankNumber()
	if !ok || rank <= 0 {
		return 0
	}

	percent := float64(rank) / float64(r.Players) * 100
	if percent > 100 {
		return 100
	}
	return percent
}

func orUnknown(s string) string {
	if s == "" {
		return common.Unknown
	}
	return s
}
