package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeBuyIn(t *testing.T) {
	tests := []struct {
		buyIn    float64
		expected BuyInCategory
	}{
		{-1, BuyInFreeroll},
		{0, BuyInFreeroll},
		{0.01, BuyInMicro},
		{4.99, BuyInMicro},
		{5, BuyInLow},
		{15, BuyInLow},
		{15.01, BuyInMedium},
		{99.99, BuyInMedium},
		{100, BuyInHigh},
		{10000, BuyInHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CategorizeBuyIn(tt.buyIn), "buy-in %v", tt.buyIn)
	}
}

func TestCategorizeRankPercent(t *testing.T) {
	tests := []struct {
		percent  float64
		expected RankPercentCategory
	}{
		{0, RankNotInMoney},
		{0.4, RankBest},
		{5.0, RankBest},
		{5.01, RankVeryGood},
		{10.0, RankVeryGood},
		{10.01, RankGood},
		{15.0, RankGood},
		{15.01, RankFair},
		{100, RankFair},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CategorizeRankPercent(tt.percent), "percent %v", tt.percent)
	}
}

func TestCategorizeStartTime(t *testing.T) {
	at := func(hour int) *time.Time {
		tm := time.Date(2023, 9, 6, hour, 30, 0, 0, time.UTC)
		return &tm
	}

	assert.Equal(t, TimeUnknown, CategorizeStartTime(nil))
	assert.Equal(t, TimeNight, CategorizeStartTime(at(0)))
	assert.Equal(t, TimeNight, CategorizeStartTime(at(5)))
	assert.Equal(t, TimeMorning, CategorizeStartTime(at(6)))
	assert.Equal(t, TimeAfternoon, CategorizeStartTime(at(12)))
	assert.Equal(t, TimeEvening, CategorizeStartTime(at(18)))
	assert.Equal(t, TimeEvening, CategorizeStartTime(at(23)))
}

func TestDayOfWeek(t *testing.T) {
	wednesday := time.Date(2023, 9, 6, 19, 0, 0, 0, time.UTC)

	assert.Equal(t, "Wednesday", DayOfWeek(&wednesday))
	assert.Equal(t, "", DayOfWeek(nil))
}
