package analysis

import (
	"time"

	"github.com/aqlanhadi/pokertrack/extractor/common"
	"github.com/shopspring/decimal"
)

func at(value string) *time.Time {
	t, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		panic(err)
	}
	return &t
}

func report(id, name string, start *time.Time, buyIn, prize string, entries int) common.TournamentReport {
	b := decimal.RequireFromString(buyIn)
	return common.TournamentReport{
		Source:             "src-" + id,
		TournamentID:       id,
		TournamentName:     name,
		TournamentGameType: "Hold'em No Limit",
		BuyIn:              b,
		TotalBuyIn:         b.Mul(decimal.NewFromInt(int64(entries))),
		Prize:              decimal.RequireFromString(prize),
		StartTime:          start,
		EntryCount:         entries,
		Players:            100,
		TotalPrizePool:     decimal.NewFromInt(1000),
		Rank:               common.Unknown,
	}
}

// sampleRows: three timed runs on different days and one without a start time.
func sampleRows() []Row {
	return Build([]common.TournamentReport{
		report("3", "Zodiac Ox", at("2023-09-08 13:00"), "20", "0", 1),
		report("1", "Turbo Hyper", at("2023-09-06 19:00"), "10", "50", 1),
		report("4", "Mystery", nil, "1", "0", 1),
		report("2", "WSOP Step to Main", at("2023-09-07 02:00"), "5", "0", 2),
	})
}
