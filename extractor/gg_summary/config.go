package gg_summary

import (
	"log"
	"regexp"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultAmount          = `(\$|€|¥)([0-9,]+(\.[0-9]{1,2})?)`
	defaultStartTimeMarker = `Tournament started`
	defaultStartTime       = `(\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2})`
	defaultStartTimeFormat = `2006/01/02 15:04:05`
	defaultPlayersLabel    = `Players`
	defaultPrizePoolLabel  = `Total Prize Pool`
	defaultChipsMarker     = `chips`
)

var defaultReEntries = []string{
	`You made (\d+) re-entries`,
	`re-entered (\d+) times`,
	`You made (\d+)-entries`,
}

type config struct {
	Amount          *regexp.Regexp
	StartTimeMarker string
	StartTime       *regexp.Regexp
	StartTimeFormat string
	PlayersLabel    string
	PrizePoolLabel  string
	ChipsMarker     string
	ReEntries       []*regexp.Regexp
	Location        *time.Location
}

func loadConfig() config {
	cfg := config{
		Amount:          regexp.MustCompile(stringOr("report.patterns.amount", defaultAmount)),
		StartTimeMarker: stringOr("report.patterns.start_time_marker", defaultStartTimeMarker),
		StartTime:       regexp.MustCompile(stringOr("report.patterns.start_time", defaultStartTime)),
		StartTimeFormat: stringOr("report.patterns.start_time_format", defaultStartTimeFormat),
		PlayersLabel:    stringOr("report.patterns.players_label", defaultPlayersLabel),
		PrizePoolLabel:  stringOr("report.patterns.prize_pool_label", defaultPrizePoolLabel),
		ChipsMarker:     stringOr("report.patterns.chips_marker", defaultChipsMarker),
		Location:        time.Local,
	}

	reEntries := viper.GetStringSlice("report.patterns.reentries")
	if len(reEntries) == 0 {
		reEntries = defaultReEntries
	}
	for _, pattern := range reEntries {
		cfg.ReEntries = append(cfg.ReEntries, regexp.MustCompile(pattern))
	}

	if tz := viper.GetString("report.timezone"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			log.Printf("Warning: Could not load timezone %s, using Local: %v", tz, err)
		} else {
			cfg.Location = loc
		}
	}

	return cfg
}

func stringOr(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}
