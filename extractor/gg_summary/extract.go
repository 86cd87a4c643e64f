package gg_summary

import (
	"errors"
	"log"

	"github.com/aqlanhadi/pokertrack/extractor/common"
)

// Extractor turns tournament summary exports into TournamentReports.
type Extractor struct {
	cfg   config
	rates Converter
}

// New creates an Extractor using the report.* configuration and rates for
// currency conversion.
func New(rates Converter) *Extractor {
	return &Extractor{cfg: loadConfig(), rates: rates}
}

// Extract parses the lines of one summary. Each field is extracted
// independently; a failed field keeps its default and is recorded as an issue.
func (e *Extractor) Extract(source string, lines []string) common.TournamentReport {
	var f Fields

	note := func(field string, err error) {
		if err == nil {
			return
		}
		if errors.Is(err, common.ErrNotApplicable) {
			log.Printf("INFO [%s] %s: %v", source, field, err)
			return
		}
		log.Printf("WARN [%s] %s: %v", source, field, err)
		f.Issues = append(f.Issues, common.FieldIssue{Field: field, Reason: err.Error()})
	}

	h, err := extractHeader(lines)
	note(common.FieldTournamentID, err)
	f.TournamentID, f.TournamentName, f.TournamentGameType = h.ID, h.Name, h.GameType

	f.BuyIn, err = extractBuyIn(lines, e.cfg.Amount, e.rates)
	note(common.FieldBuyIn, err)

	f.Players, err = extractPlayers(lines, e.cfg.PlayersLabel)
	note(common.FieldPlayers, err)

	f.TotalPrizePool, err = extractPrizePool(lines, e.cfg.PrizePoolLabel, e.cfg.Amount, e.rates)
	note(common.FieldTotalPrizePool, err)

	f.Rank, err = extractRank(lines)
	note(common.FieldRank, err)

	f.Prize, err = extractPrize(lines, e.cfg.ChipsMarker, e.cfg.Amount, e.rates)
	note(common.FieldPrize, err)

	f.StartTime, err = extractStartTime(lines, e.cfg.StartTimeMarker, e.cfg.StartTime, e.cfg.StartTimeFormat, e.cfg.Location)
	note(common.FieldStartTime, err)

	f.EntryCount, err = extractEntryCount(lines, e.cfg.ReEntries)
	note(common.FieldEntryCount, err)

	return Assemble(source, f)
}

// ExtractText splits text into lines and parses it.
func (e *Extractor) ExtractText(source, text string) common.TournamentReport {
	return e.Extract(source, common.SplitLines(text))
}
