package gg_summary

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aqlanhadi/pokertrack/extractor/common"
	"github.com/shopspring/decimal"
)

// Line positions guaranteed by the export format. The prize line is counted
// from the end of the file.
const (
	headerLine     = 0
	buyInLine      = 1
	playersLine    = 2
	prizePoolLine  = 3
	rankLine       = 5
	prizeFromEnd   = 3
	idMarker       = "#"
	headerSplit    = ", "
	rankTerminator = ":"
)

// ordinalRegex accepts "3rd", "1,234th" or "7". A comma must group thousands,
// so "1,2th" does not match.
var ordinalRegex = regexp.MustCompile(`^(\d{1,3}(?:,\d{3})+|\d+)(?:st|nd|rd|th)?(?:\s|$)`)

// Converter expresses a symbol-tagged amount in the reference currency.
type Converter interface {
	Convert(symbol string, amount decimal.Decimal) (decimal.Decimal, error)
}

type header struct {
	ID       string
	Name     string
	GameType string
}

func lineAt(lines []string, index int) (string, error) {
	if index < 0 || index >= len(lines) {
		return "", fmt.Errorf("%w: index %d of %d lines", common.ErrMissingLine, index, len(lines))
	}
	return lines[index], nil
}

// extractHeader reads "Tournament #<id>, <name>, <game type>". The name may
// itself contain ", " so the game type is taken after the last separator.
func extractHeader(lines []string) (header, error) {
	unknown := header{ID: common.Unknown, Name: common.Unknown, GameType: common.Unknown}

	line, err := lineAt(lines, headerLine)
	if err != nil {
		return unknown, err
	}

	left, right, found := strings.Cut(line, headerSplit)
	if !found {
		return unknown, fmt.Errorf("%w: no %q in header", common.ErrNoMatch, headerSplit)
	}

	_, id, found := strings.Cut(left, idMarker)
	if !found {
		return unknown, fmt.Errorf("%w: no %q in header", common.ErrNoMatch, idMarker)
	}

	result := header{ID: strings.TrimSpace(id), Name: common.Unknown, GameType: common.Unknown}

	cut := strings.LastIndex(right, headerSplit)
	if cut < 0 {
		return result, fmt.Errorf("%w: no game type in header", common.ErrNoMatch)
	}
	result.Name = right[:cut]
	result.GameType = right[cut+len(headerSplit):]

	return result, nil
}

// extractBuyIn sums every amount on the buy-in line, e.g. "Buy-in: $5+$0.8+$5".
func extractBuyIn(lines []string, amount *regexp.Regexp, rates Converter) (decimal.Decimal, error) {
	line, err := lineAt(lines, buyInLine)
	if err != nil {
		return decimal.Zero, err
	}

	matches := amount.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return decimal.Zero, fmt.Errorf("%w: no amount in %q", common.ErrNoMatch, line)
	}

	// An amount that cannot be converted is reported; the others still count.
	total := decimal.Zero
	var errs []error
	for _, match := range matches {
		value, err := convertMatch(match, rates)
		if err != nil {
			errs = append(errs, fmt.Errorf("%q: %w", match[0], err))
			continue
		}
		total = total.Add(value)
	}
	return total, errors.Join(errs...)
}

// extractPlayers reads "<n> Players".
func extractPlayers(lines []string, label string) (int, error) {
	line, err := lineAt(lines, playersLine)
	if err != nil {
		return 0, err
	}

	text := strings.Trim(strings.ReplaceAll(line, label, ""), " :\t")
	return common.ParseCount(text)
}

// extractPrizePool reads "Total Prize Pool: $2,500". An amount without a
// symbol is taken to be in the reference currency.
func extractPrizePool(lines []string, label string, amount *regexp.Regexp, rates Converter) (decimal.Decimal, error) {
	line, err := lineAt(lines, prizePoolLine)
	if err != nil {
		return decimal.Zero, err
	}

	if match := amount.FindStringSubmatch(line); match != nil {
		return convertMatch(match, rates)
	}

	text := strings.TrimSpace(strings.ReplaceAll(line, label, ""))
	if !strings.ContainsAny(text, "0123456789") {
		return decimal.Zero, fmt.Errorf("%w: no amount in %q", common.ErrNoMatch, line)
	}
	value, err := common.CleanDecimal(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", common.ErrConversion, err)
	}
	return value, nil
}

// extractRank reads the finishing position from "3rd : $150.00".
func extractRank(lines []string) (string, error) {
	line, err := lineAt(lines, rankLine)
	if err != nil {
		return common.Unknown, err
	}

	text, _, _ := strings.Cut(line, rankTerminator)
	text = strings.TrimSpace(text)

	match := ordinalRegex.FindStringSubmatch(text)
	if match == nil {
		return common.Unknown, fmt.Errorf("%w: rank %q", common.ErrConversion, text)
	}
	rank, err := common.ParseCount(match[1])
	if err != nil {
		return common.Unknown, fmt.Errorf("rank %q: %w", text, err)
	}
	return strconv.Itoa(rank), nil
}

// extractPrize reads the winnings line. A chip count means the run did not cash.
func extractPrize(lines []string, chipsMarker string, amount *regexp.Regexp, rates Converter) (decimal.Decimal, error) {
	line, err := lineAt(lines, len(lines)-prizeFromEnd)
	if err != nil {
		return decimal.Zero, err
	}

	if strings.Contains(strings.ToLower(line), strings.ToLower(chipsMarker)) {
		return decimal.Zero, nil
	}

	match := amount.FindStringSubmatch(line)
	if match == nil {
		return decimal.Zero, fmt.Errorf("%w: no amount in %q", common.ErrNoMatch, line)
	}
	return convertMatch(match, rates)
}

// extractStartTime finds the first line carrying marker and parses its timestamp.
func extractStartTime(lines []string, marker string, pattern *regexp.Regexp, layout string, loc *time.Location) (*time.Time, error) {
	for _, line := range lines {
		if !strings.Contains(line, marker) {
			continue
		}

		match := pattern.FindStringSubmatch(line)
		if match == nil {
			return nil, fmt.Errorf("%w: no timestamp in %q", common.ErrNoMatch, line)
		}
		value := match[0]
		if len(match) > 1 {
			value = match[1]
		}

		started, err := common.ParseDate(layout, value, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrConversion, err)
		}
		return &started, nil
	}

	return nil, fmt.Errorf("%w: no %q line", common.ErrNotApplicable, marker)
}

// extractEntryCount tries each phrasing in order; the first one found on any
// line gives the number of additional entries.
func extractEntryCount(lines []string, patterns []*regexp.Regexp) (int, error) {
	for _, pattern := range patterns {
		for _, line := range lines {
			match := pattern.FindStringSubmatch(line)
			if match == nil || len(match) < 2 {
				continue
			}
			reEntries, err := common.ParseCount(match[1])
			if err != nil {
				return 1, err
			}
			if reEntries >= math.MaxInt {
				return 1, fmt.Errorf("%w: %d re-entries", common.ErrConversion, reEntries)
			}
			return reEntries + 1, nil
		}
	}
	return 1, nil
}

func convertMatch(match []string, rates Converter) (decimal.Decimal, error) {
	value, err := common.ParseAmount(match[2])
	if err != nil {
		return decimal.Zero, err
	}
	converted, err := rates.Convert(match[1], value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", common.ErrConversion, err)
	}
	return converted, nil
}
