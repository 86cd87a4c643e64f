package common

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Extraction failure shapes. None of them abort a report; the field keeps its default.
var (
	// ErrMissingLine means the line a positional field lives on does not exist.
	ErrMissingLine = errors.New("line not present")
	// ErrNoMatch means the expected label, marker or pattern was not found.
	ErrNoMatch = errors.New("pattern not found")
	// ErrConversion means the matched text could not be converted.
	ErrConversion = errors.New("conversion failed")
	// ErrNotApplicable means an optional marker is absent, which is a normal outcome.
	ErrNotApplicable = errors.New("not applicable")
)

var nonNumericRegex = regexp.MustCompile(`[^0-9.]`)

// CleanDecimal parses a string into a decimal.Decimal, removing non-numeric characters
func CleanDecimal(text string) (decimal.Decimal, error) {

	cleanText := nonNumericRegex.ReplaceAllString(text, "")
	if cleanText == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(cleanText)
	if err != nil {
		return decimal.Zero, err
	}

	return amount, nil
}

// ParseAmount parses a matched amount such as "1,234.50".
func ParseAmount(text string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(text), ",", ""))
	if err != nil {
		return decimal.Zero, errors.Join(ErrConversion, err)
	}
	return amount, nil
}

// ParseCount parses a non-negative integer, tolerating thousands separators.
func ParseCount(text string) (int, error) {
	n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(text), ",", ""))
	if err != nil {
		return 0, errors.Join(ErrConversion, err)
	}
	if n < 0 {
		return 0, errors.Join(ErrConversion, errors.New("negative count"))
	}
	return n, nil
}

// ParseDate parses a date string using a layout, handling common issues
func ParseDate(layout, value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(layout, value, loc)
}
