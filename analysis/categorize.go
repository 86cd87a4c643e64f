// Package analysis derives columns, filters, aggregates and exports the
// tabular collection of tournament reports.
package analysis

import "time"

// BuyInCategory buckets the base buy-in.
type BuyInCategory string

const (
	BuyInFreeroll BuyInCategory = "FREEROLL"
	BuyInMicro    BuyInCategory = "MICRO"
	BuyInLow      BuyInCategory = "LOW"
	BuyInMedium   BuyInCategory = "MEDIUM"
	BuyInHigh     BuyInCategory = "HIGH"
)

// BuyInCategories lists the buckets from cheapest to most expensive.
var BuyInCategories = []BuyInCategory{BuyInFreeroll, BuyInMicro, BuyInLow, BuyInMedium, BuyInHigh}

// CategorizeBuyIn: FREEROLL at 0, MICRO below 5, LOW in [5, 15], MEDIUM in
// (15, 100), HIGH from 100.
func CategorizeBuyIn(buyIn float64) BuyInCategory {
	switch {
	case buyIn <= 0:
		return BuyInFreeroll
	case buyIn < 5:
		return BuyInMicro
	case buyIn <= 15:
		return BuyInLow
	case buyIn < 100:
		return BuyInMedium
	default:
		return BuyInHigh
	}
}

// RankPercentCategory buckets the finishing percentile of cashed runs.
type RankPercentCategory string

const (
	RankNotInMoney RankPercentCategory = ""
	RankBest       RankPercentCategory = "BEST"
	RankVeryGood   RankPercentCategory = "VERY_GOOD"
	RankGood       RankPercentCategory = "GOOD"
	RankFair       RankPercentCategory = "FAIR"
)

// RankPercentCategories lists the buckets from best to worst, then not in the money.
var RankPercentCategories = []RankPercentCategory{RankBest, RankVeryGood, RankGood, RankFair, RankNotInMoney}

// CategorizeRankPercent: "" at 0, BEST up to 5, VERY_GOOD up to 10, GOOD up
// to 15, FAIR above.
func CategorizeRankPercent(percent float64) RankPercentCategory {
	switch {
	case percent <= 0:
		return RankNotInMoney
	case percent <= 5:
		return RankBest
	case percent <= 10:
		return RankVeryGood
	case percent <= 15:
		return RankGood
	default:
		return RankFair
	}
}

// TimeBucket is the part of day a tournament started in.
type TimeBucket string

const (
	TimeUnknown   TimeBucket = ""
	TimeNight     TimeBucket = "NIGHT"
	TimeMorning   TimeBucket = "MORNING"
	TimeAfternoon TimeBucket = "AFTERNOON"
	TimeEvening   TimeBucket = "EVENING"
)

// TimeBuckets lists the buckets in clock order.
var TimeBuckets = []TimeBucket{TimeNight, TimeMorning, TimeAfternoon, TimeEvening}

// CategorizeStartTime: NIGHT [0,6), MORNING [6,12), AFTERNOON [12,18), EVENING [18,24).
func CategorizeStartTime(start *time.Time) TimeBucket {
	if start == nil {
		return TimeUnknown
	}
	switch hour := start.Hour(); {
	case hour < 6:
		return TimeNight
	case hour < 12:
		return TimeMorning
	case hour < 18:
		return TimeAfternoon
	default:
		return TimeEvening
	}
}

// Weekdays lists day names Monday first.
var Weekdays = []string{
	time.Monday.String(),
	time.Tuesday.String(),
	time.Wednesday.String(),
	time.Thursday.String(),
	time.Friday.String(),
	time.Saturday.String(),
	time.Sunday.String(),
}

// DayOfWeek returns the weekday name, or "" without a start time.
func DayOfWeek(start *time.Time) string {
	if start == nil {
		return ""
	}
	return start.Weekday().String()
}
