package analysis

import (
	"sort"

	"github.com/aqlanhadi/pokertrack/extractor/common"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Row is a report with its derived columns.
type Row struct {
	common.TournamentReport
	BuyInCategory       BuyInCategory       `json:"buy_in_category"`
	RankPercentCategory RankPercentCategory `json:"rank_percent_category"`
	DayOfWeek           string              `json:"day_of_week"`
	TimeBucket          TimeBucket          `json:"time_bucket"`
	Profit              decimal.Decimal     `json:"profit"`
	ROI                 float64             `json:"roi"`
	CumulativeProfit    decimal.Decimal     `json:"cumulative_profit"`
	RecordIndex         int                 `json:"record_index"`
}

// Derive computes the per-record columns. CumulativeProfit and RecordIndex
// depend on the sequence and are set by Build.
func Derive(report common.TournamentReport) Row {
	profit := report.Prize.Sub(report.TotalBuyIn)

	var roi float64
	if !report.TotalBuyIn.IsZero() {
		roi = profit.Div(report.TotalBuyIn).Mul(hundred).InexactFloat64()
	}

	return Row{
		TournamentReport:    report,
		BuyInCategory:       CategorizeBuyIn(report.BuyIn.InexactFloat64()),
		RankPercentCategory: CategorizeRankPercent(report.RankPercent),
		DayOfWeek:           DayOfWeek(report.StartTime),
		TimeBucket:          CategorizeStartTime(report.StartTime),
		Profit:              profit,
		ROI:                 roi,
	}
}

// Build orders reports by start time and derives every column once over the
// whole batch. Reports without a start time keep their input order at the end.
func Build(reports []common.TournamentReport) []Row {
	rows := make([]Row, 0, len(reports))
	for _, report := range reports {
		rows = append(rows, Derive(report))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].StartTime, rows[j].StartTime
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})

	accumulate(rows)
	return rows
}

// accumulate sets the running profit sum and position of each row.
func accumulate(rows []Row) {
	running := decimal.Zero
	for i := range rows {
		running = running.Add(rows[i].Profit)
		rows[i].CumulativeProfit = running
		rows[i].RecordIndex = i
	}
}

// GameTypes returns the distinct game types in order of first appearance.
func GameTypes(rows []Row) []string {
	seen := make(map[string]bool)
	var types []string
	for _, row := range rows {
		if seen[row.TournamentGameType] {
			continue
		}
		seen[row.TournamentGameType] = true
		types = append(types, row.TournamentGameType)
	}
	return types
}
