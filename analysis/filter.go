package analysis

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Filter holds the predicates the presentation layer applies to the table.
// Zero values leave a dimension unconstrained.
type Filter struct {
	Since      time.Time
	Until      time.Time
	MinBuyIn   *decimal.Decimal
	MaxBuyIn   *decimal.Decimal
	MinPlayers *int
	MaxPlayers *int
	Tags       []string
	GameType   string
}

// IsZero reports whether the filter keeps every row.
func (f Filter) IsZero() bool {
	return f.Since.IsZero() && f.Until.IsZero() &&
		f.MinBuyIn == nil && f.MaxBuyIn == nil &&
		f.MinPlayers == nil && f.MaxPlayers == nil &&
		len(f.Tags) == 0 && f.GameType == ""
}

// Match reports whether row passes every predicate. Dates compare by calendar
// day; a row without a start time fails any date bound.
func (f Filter) Match(row Row) bool {
	if !f.Since.IsZero() || !f.Until.IsZero() {
		if row.StartTime == nil {
			return false
		}
		day := dateOf(*row.StartTime)
		if !f.Since.IsZero() && day.Before(dateOf(f.Since)) {
			return false
		}
		if !f.Until.IsZero() && day.After(dateOf(f.Until)) {
			return false
		}
	}

	if f.MinBuyIn != nil && row.BuyIn.LessThan(*f.MinBuyIn) {
		return false
	}
	if f.MaxBuyIn != nil && row.BuyIn.GreaterThan(*f.MaxBuyIn) {
		return false
	}
	if f.MinPlayers != nil && row.Players < *f.MinPlayers {
		return false
	}
	if f.MaxPlayers != nil && row.Players > *f.MaxPlayers {
		return false
	}

	if len(f.Tags) > 0 && !containsAny(row.TournamentName, f.Tags) {
		return false
	}
	if f.GameType != "" && row.TournamentGameType != f.GameType {
		return false
	}

	return true
}

// Apply returns the matching rows with cumulative profit and record index
// recomputed over the filtered sequence. rows is not modified.
func (f Filter) Apply(rows []Row) []Row {
	filtered := make([]Row, 0, len(rows))
	for _, row := range rows {
		if f.Match(row) {
			filtered = append(filtered, row)
		}
	}
	accumulate(filtered)
	return filtered
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
