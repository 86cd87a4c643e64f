// Package currency converts symbol-tagged amounts into a single reference currency.
package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"golang.org/x/text/currency"
)

// ErrUnknownSymbol is returned for a symbol missing from the table.
var ErrUnknownSymbol = errors.New("unknown currency symbol")

// Normalizer maps currency symbols to multipliers into the reference currency.
type Normalizer struct {
	mu        sync.RWMutex
	reference currency.Unit
	symbols   map[string]currency.Unit
	rates     map[currency.Unit]decimal.Decimal
	client    *http.Client
}

// New creates a Normalizer. The reference currency always converts at 1.
func New(reference currency.Unit, symbols map[string]currency.Unit, rates map[currency.Unit]decimal.Decimal) *Normalizer {
	n := &Normalizer{
		reference: reference,
		symbols:   make(map[string]currency.Unit, len(symbols)),
		rates:     make(map[currency.Unit]decimal.Decimal, len(rates)+1),
		client:    &http.Client{Timeout: 10 * time.Second},
	}
	for symbol, unit := range symbols {
		n.symbols[symbol] = unit
	}
	for unit, rate := range rates {
		n.rates[unit] = rate
	}
	n.rates[reference] = decimal.NewFromInt(1)
	return n
}

// Default returns the static table: USD reference, EUR at 1.18 and CNY at 0.15.
func Default() *Normalizer {
	return New(currency.USD,
		map[string]currency.Unit{
			"$": currency.USD,
			"€": currency.EUR,
			"¥": currency.CNY,
		},
		map[currency.Unit]decimal.Decimal{
			currency.EUR: decimal.RequireFromString("1.18"),
			currency.CNY: decimal.RequireFromString("0.15"),
		})
}

// LoadConfig builds a Normalizer from the currency.* configuration keys.
// Configured symbols and rates are laid over those of Default, so missing
// keys keep their default values. The default rates are quoted against USD
// and are dropped when another reference currency is configured.
func LoadConfig() (*Normalizer, error) {
	base := Default()

	reference := base.reference
	if code := viper.GetString("currency.reference"); code != "" {
		unit, err := parseCode(code)
		if err != nil {
			return nil, fmt.Errorf("currency.reference: %w", err)
		}
		reference = unit
	}

	symbols := make(map[string]currency.Unit, len(base.symbols))
	for symbol, unit := range base.symbols {
		symbols[symbol] = unit
	}
	for symbol, code := range viper.GetStringMapString("currency.symbols") {
		unit, err := parseCode(code)
		if err != nil {
			return nil, fmt.Errorf("currency.symbols[%s]: %w", symbol, err)
		}
		symbols[symbol] = unit
	}

	rates := make(map[currency.Unit]decimal.Decimal, len(base.rates))
	if reference == base.reference {
		for unit, rate := range base.rates {
			rates[unit] = rate
		}
	}
	for code, value := range viper.GetStringMapString("currency.rates") {
		unit, err := parseCode(code)
		if err != nil {
			return nil, fmt.Errorf("currency.rates: %w", err)
		}
		rate, err := decimal.NewFromString(value)
		if err != nil || !rate.IsPositive() {
			return nil, fmt.Errorf("currency.rates[%s]: invalid rate %q", unit, value)
		}
		rates[unit] = rate
	}

	return New(reference, symbols, rates), nil
}

func parseCode(code string) (currency.Unit, error) {
	return currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
}

// Reference returns the currency every amount is converted into.
func (n *Normalizer) Reference() currency.Unit {
	return n.reference
}

// Symbols returns the known symbols in a stable order.
func (n *Normalizer) Symbols() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	symbols := make([]string, 0, len(n.symbols))
	for symbol := range n.symbols {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// Rate returns the multiplier for symbol.
func (n *Normalizer) Rate(symbol string) (decimal.Decimal, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	unit, ok := n.symbols[symbol]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownSymbol, symbol)
	}
	rate, ok := n.rates[unit]
	if !ok {
		return decimal.Zero, fmt.Errorf("no rate for %s", unit)
	}
	return rate, nil
}

// Convert expresses amount, tagged with symbol, in the reference currency.
// On error the amount is returned unchanged.
func (n *Normalizer) Convert(symbol string, amount decimal.Decimal) (decimal.Decimal, error) {
	rate, err := n.Rate(symbol)
	if err != nil {
		return amount, err
	}
	return amount.Mul(rate), nil
}

// ratesResponse is the shape served by common exchange-rate APIs:
// units of each currency per one unit of base.
type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Refresh replaces the multipliers with live rates from url. The current
// table is kept when the lookup fails or returns nothing usable.
func (n *Normalizer) Refresh(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build rates request: %w", err)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch rates: status %d", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode rates: %w", err)
	}

	if body.Base != "" {
		base, err := parseCode(body.Base)
		if err != nil {
			return fmt.Errorf("invalid rates base: %w", err)
		}
		if base != n.reference {
			return fmt.Errorf("rates base %s does not match reference %s", base, n.reference)
		}
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	updated := 0
	for unit := range n.rates {
		if unit == n.reference {
			continue
		}
		perReference, ok := body.Rates[unit.String()]
		if !ok || perReference <= 0 {
			continue
		}
		n.rates[unit] = decimal.NewFromInt(1).Div(decimal.NewFromFloat(perReference)).Round(6)
		updated++
	}

	if updated == 0 {
		return errors.New("rates response contained no known currencies")
	}

	log.Printf("currency: refreshed %d rates from %s", updated, url)
	return nil
}
