package gg_summary

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/aqlanhadi/pokertrack/extractor/common"
	"github.com/aqlanhadi/pokertrack/extractor/currency"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stdcurrency "golang.org/x/text/currency"
)

var (
	testAmount    = regexp.MustCompile(defaultAmount)
	testStartTime = regexp.MustCompile(defaultStartTime)
)

func testReEntries() []*regexp.Regexp {
	var patterns []*regexp.Regexp
	for _, p := range defaultReEntries {
		patterns = append(patterns, regexp.MustCompile(p))
	}
	return patterns
}

func TestExtractHeader(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected header
		wantErr  error
	}{
		{
			name:     "full header",
			line:     "Tournament #103083445, T Builder 2, Hold'em No Limit",
			expected: header{ID: "103083445", Name: "T Builder 2", GameType: "Hold'em No Limit"},
		},
		{
			name:     "name containing separator",
			line:     "Tournament #1, Bounty Hunters, Sunday Special $10.80, PLO",
			expected: header{ID: "1", Name: "Bounty Hunters, Sunday Special $10.80", GameType: "PLO"},
		},
		{
			name:     "no game type",
			line:     "Tournament #42, Daily Freeroll",
			expected: header{ID: "42", Name: common.Unknown, GameType: common.Unknown},
			wantErr:  common.ErrNoMatch,
		},
		{
			name:     "no separator",
			line:     "Tournament #42",
			expected: header{ID: common.Unknown, Name: common.Unknown, GameType: common.Unknown},
			wantErr:  common.ErrNoMatch,
		},
		{
			name:     "no id marker",
			line:     "Tournament 42, Daily, NLH",
			expected: header{ID: common.Unknown, Name: common.Unknown, GameType: common.Unknown},
			wantErr:  common.ErrNoMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractHeader([]string{tt.line})
			assert.Equal(t, tt.expected, got)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExtractHeader_EmptyFile(t *testing.T) {
	got, err := extractHeader(nil)
	assert.True(t, errors.Is(err, common.ErrMissingLine))
	assert.Equal(t, common.Unknown, got.ID)
}

func TestExtractBuyIn(t *testing.T) {
	rates := currency.Default()

	tests := []struct {
		line     string
		expected string
	}{
		{"Buy-in: $10 + $1", "11"},
		{"Buy-in: $5+$0.8+$5", "10.8"},
		{"Buy-in: €10 + €1", "12.98"},
		{"Buy-in: ¥100", "15"},
		{"Buy-in: $1,000+$50", "1050"},
		{"Buy-in: $0", "0"},
	}

	for _, tt := range tests {
		got, err := extractBuyIn([]string{"header", tt.line}, testAmount, rates)
		require.NoError(t, err, tt.line)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
			"%q: expected %s, got %s", tt.line, tt.expected, got)
	}
}

func TestExtractBuyIn_UnconvertibleAmountKeepsOthers(t *testing.T) {
	rates := currency.New(stdcurrency.USD,
		map[string]stdcurrency.Unit{"$": stdcurrency.USD, "€": stdcurrency.EUR, "¥": stdcurrency.CNY},
		map[stdcurrency.Unit]decimal.Decimal{stdcurrency.EUR: decimal.RequireFromString("1.10")})

	got, err := extractBuyIn([]string{"header", "Buy-in: $10+€10+¥100"}, testAmount, rates)
	assert.True(t, errors.Is(err, common.ErrConversion))
	assert.Contains(t, err.Error(), "¥100")
	assert.True(t, got.Equal(decimal.RequireFromString("21")), "got %s", got)
}

func TestExtractBuyIn_Defaults(t *testing.T) {
	rates := currency.Default()

	got, err := extractBuyIn([]string{"header", "Buy-in: free"}, testAmount, rates)
	assert.True(t, errors.Is(err, common.ErrNoMatch))
	assert.True(t, got.IsZero())

	got, err = extractBuyIn([]string{"header"}, testAmount, rates)
	assert.True(t, errors.Is(err, common.ErrMissingLine))
	assert.True(t, got.IsZero())
}

func TestExtractPlayers(t *testing.T) {
	lines := []string{"h", "b", "1,090 Players"}
	got, err := extractPlayers(lines, defaultPlayersLabel)
	require.NoError(t, err)
	assert.Equal(t, 1090, got)

	got, err = extractPlayers([]string{"h", "b", "Players: 250"}, defaultPlayersLabel)
	require.NoError(t, err)
	assert.Equal(t, 250, got)

	got, err = extractPlayers([]string{"h", "b", "many Players"}, defaultPlayersLabel)
	assert.True(t, errors.Is(err, common.ErrConversion))
	assert.Equal(t, 0, got)

	_, err = extractPlayers([]string{"h"}, defaultPlayersLabel)
	assert.True(t, errors.Is(err, common.ErrMissingLine))
}

func TestExtractPrizePool(t *testing.T) {
	rates := currency.Default()
	lines := func(l string) []string { return []string{"h", "b", "p", l} }

	got, err := extractPrizePool(lines("Total Prize Pool: $10,900"), defaultPrizePoolLabel, testAmount, rates)
	require.NoError(t, err)
	assert.Equal(t, "10900", got.String())

	got, err = extractPrizePool(lines("Total Prize Pool: €1,000"), defaultPrizePoolLabel, testAmount, rates)
	require.NoError(t, err)
	assert.Equal(t, "1180", got.String())

	got, err = extractPrizePool(lines("Total Prize Pool: 2,500.50"), defaultPrizePoolLabel, testAmount, rates)
	require.NoError(t, err)
	assert.Equal(t, "2500.5", got.String())

	got, err = extractPrizePool(lines("Total Prize Pool: TBD"), defaultPrizePoolLabel, testAmount, rates)
	assert.True(t, errors.Is(err, common.ErrNoMatch))
	assert.True(t, got.IsZero())
}

func TestExtractRank(t *testing.T) {
	tests := []struct {
		line     string
		expected string
		wantErr  bool
	}{
		{"3rd: $50", "3", false},
		{"1st : $1,200.00", "1", false},
		{"2nd : $800", "2", false},
		{"33rd : $45.38", "33", false},
		{"11th : $20", "11", false},
		{"120th", "120", false},
		{"7", "7", false},
		{"1,234th : $7.50", "1234", false},
		{"12,000th", "12000", false},
		{"1,2th : $1", common.Unknown, true},
		{"1,2345th", common.Unknown, true},
		{"You finished the tournament", common.Unknown, true},
		{"", common.Unknown, true},
	}

	for _, tt := range tests {
		lines := []string{"0", "1", "2", "3", "4", tt.line}
		got, err := extractRank(lines)
		assert.Equal(t, tt.expected, got, tt.line)
		if tt.wantErr {
			assert.True(t, errors.Is(err, common.ErrConversion), tt.line)
		} else {
			assert.NoError(t, err, tt.line)
		}
	}
}

func TestExtractRank_ShortFile(t *testing.T) {
	got, err := extractRank([]string{"0", "1", "2", "3", "4"})
	assert.Equal(t, common.Unknown, got)
	assert.True(t, errors.Is(err, common.ErrMissingLine))
}

func TestExtractPrize(t *testing.T) {
	rates := currency.Default()
	tail := func(l string) []string { return []string{"h", "b", "p", l, "x", "y"} }

	got, err := extractPrize(tail("You received a total of $1,234.56."), defaultChipsMarker, testAmount, rates)
	require.NoError(t, err)
	assert.Equal(t, "1234.56", got.String())

	got, err = extractPrize(tail("You received a total of €100."), defaultChipsMarker, testAmount, rates)
	require.NoError(t, err)
	assert.Equal(t, "118", got.String())

	got, err = extractPrize(tail("You received a total of 12,500 Chips."), defaultChipsMarker, testAmount, rates)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = extractPrize(tail("You finished the tournament in 200th place."), defaultChipsMarker, testAmount, rates)
	assert.True(t, errors.Is(err, common.ErrNoMatch))
	assert.True(t, got.IsZero())

	_, err = extractPrize([]string{"a", "b"}, defaultChipsMarker, testAmount, rates)
	assert.True(t, errors.Is(err, common.ErrMissingLine))
}

func TestExtractStartTime(t *testing.T) {
	lines := []string{"h", "b", "Tournament started 2023/09/06 19:00:00 ", "Tournament started 2024/01/01 00:00:00"}

	got, err := extractStartTime(lines, defaultStartTimeMarker, testStartTime, defaultStartTimeFormat, time.UTC)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2023, 9, 6, 19, 0, 0, 0, time.UTC), *got)
}

func TestExtractStartTime_Missing(t *testing.T) {
	got, err := extractStartTime([]string{"h", "b"}, defaultStartTimeMarker, testStartTime, defaultStartTimeFormat, time.UTC)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, common.ErrNotApplicable))

	got, err = extractStartTime([]string{"Tournament started yesterday"}, defaultStartTimeMarker, testStartTime, defaultStartTimeFormat, time.UTC)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, common.ErrNoMatch))

	got, err = extractStartTime([]string{"Tournament started 2023/13/45 19:00:00"}, defaultStartTimeMarker, testStartTime, defaultStartTimeFormat, time.UTC)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, common.ErrConversion))
}

func TestExtractEntryCount(t *testing.T) {
	patterns := testReEntries()

	tests := []struct {
		lines    []string
		expected int
	}{
		{[]string{"You made 2 re-entries and received a total of $50."}, 3},
		{[]string{"You re-entered 4 times"}, 5},
		{[]string{"You made 1-entries"}, 2},
		{[]string{"no phrase here"}, 1},
		{[]string{}, 1},
	}

	for _, tt := range tests {
		got, err := extractEntryCount(tt.lines, patterns)
		assert.NoError(t, err)
		assert.Equal(t, tt.expected, got, "%q", tt.lines)
	}
}

func TestExtractEntryCount_Overflow(t *testing.T) {
	line := fmt.Sprintf("You made %d re-entries", math.MaxInt)

	got, err := extractEntryCount([]string{line}, testReEntries())
	assert.Equal(t, 1, got)
	assert.True(t, errors.Is(err, common.ErrConversion))
}

func TestExtractEntryCount_PatternOrder(t *testing.T) {
	// The first phrasing wins even when a later phrasing appears earlier in the file.
	lines := []string{"You re-entered 9 times", "You made 2 re-entries"}
	got, err := extractEntryCount(lines, testReEntries())
	assert.NoError(t, err)
	assert.Equal(t, 3, got)
}
