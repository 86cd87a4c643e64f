package analysis

import (
	"github.com/shopspring/decimal"
)

// Summary holds the headline statistics of a table.
type Summary struct {
	TotalTournaments int             `json:"total_tournaments"`
	TotalEntries     int             `json:"total_entries"`
	TotalBuyIn       decimal.Decimal `json:"total_buy_in"`
	TotalPrize       decimal.Decimal `json:"total_prize"`
	TotalProfit      decimal.Decimal `json:"total_profit"`
	AverageProfit    decimal.Decimal `json:"average_profit"`
	AverageBuyIn     decimal.Decimal `json:"average_buy_in"`
	InTheMoney       float64         `json:"in_the_money_percent"`
	AverageROI       float64         `json:"average_roi"`
}

// Summarize computes the statistics of rows. Averages are rounded to cents;
// the in-the-money rate counts cashed runs against all entries, re-entries
// included; ROI is averaged over rows that cost something.
func Summarize(rows []Row) Summary {
	s := Summary{
		TotalBuyIn:    decimal.Zero,
		TotalPrize:    decimal.Zero,
		TotalProfit:   decimal.Zero,
		AverageProfit: decimal.Zero,
		AverageBuyIn:  decimal.Zero,
	}

	var cashed, paid int
	var roiSum float64

	for _, row := range rows {
		s.TotalTournaments++
		s.TotalEntries += row.EntryCount
		s.TotalBuyIn = s.TotalBuyIn.Add(row.TotalBuyIn)
		s.TotalPrize = s.TotalPrize.Add(row.Prize)
		s.TotalProfit = s.TotalProfit.Add(row.Profit)
		if row.Cashed() {
			cashed++
		}
		if !row.TotalBuyIn.IsZero() {
			paid++
			roiSum += row.ROI
		}
	}

	if s.TotalTournaments > 0 {
		n := decimal.NewFromInt(int64(s.TotalTournaments))
		s.AverageProfit = s.TotalProfit.Div(n).Round(2)
		s.AverageBuyIn = s.TotalBuyIn.Div(n).Round(2)
	}
	if s.TotalEntries > 0 {
		s.InTheMoney = float64(cashed) / float64(s.TotalEntries) * 100
	}
	if paid > 0 {
		s.AverageROI = roiSum / float64(paid)
	}

	return s
}
