package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/aqlanhadi/pokertrack/extractor/common"
	"github.com/xuri/excelize/v2"
)

const (
	startTimeLayout = "2006-01-02 15:04:05"
	rowsSheet       = "Tournaments"
	summarySheet    = "Summary"
)

// Columns is the header of every export: the report fields followed by the
// derived columns.
var Columns = []string{
	"source",
	common.FieldTournamentID,
	common.FieldTournamentName,
	common.FieldTournamentGameType,
	common.FieldBuyIn,
	common.FieldTotalBuyIn,
	common.FieldPrize,
	common.FieldStartTime,
	common.FieldEntryCount,
	common.FieldPlayers,
	common.FieldTotalPrizePool,
	common.FieldRank,
	common.FieldRankPercent,
	"buy_in_category",
	"rank_percent_category",
	"day_of_week",
	"time_bucket",
	"profit",
	"roi",
	"cumulative_profit",
	"record_index",
}

func formatStartTime(row Row) string {
	if row.StartTime == nil {
		return ""
	}
	return row.StartTime.Format(startTimeLayout)
}

// record renders row as text cells in Columns order.
func record(row Row) []string {
	return []string{
		row.Source,
		row.TournamentID,
		row.TournamentName,
		row.TournamentGameType,
		row.BuyIn.StringFixed(2),
		row.TotalBuyIn.StringFixed(2),
		row.Prize.StringFixed(2),
		formatStartTime(row),
		strconv.Itoa(row.EntryCount),
		strconv.Itoa(row.Players),
		row.TotalPrizePool.StringFixed(2),
		row.Rank,
		strconv.FormatFloat(row.RankPercent, 'f', 2, 64),
		string(row.BuyInCategory),
		string(row.RankPercentCategory),
		row.DayOfWeek,
		string(row.TimeBucket),
		row.Profit.StringFixed(2),
		strconv.FormatFloat(row.ROI, 'f', 2, 64),
		row.CumulativeProfit.StringFixed(2),
		strconv.Itoa(row.RecordIndex),
	}
}

// cells renders row for a spreadsheet, keeping numbers numeric.
func cells(row Row) []interface{} {
	var rank interface{} = row.Rank
	if n, ok := row.RankNumber(); ok {
		rank = n
	}
	return []interface{}{
		row.Source,
		row.TournamentID,
		row.TournamentName,
		row.TournamentGameType,
		row.BuyIn.InexactFloat64(),
		row.TotalBuyIn.InexactFloat64(),
		row.Prize.InexactFloat64(),
		formatStartTime(row),
		row.EntryCount,
		row.Players,
		row.TotalPrizePool.InexactFloat64(),
		rank,
		row.RankPercent,
		string(row.BuyInCategory),
		string(row.RankPercentCategory),
		row.DayOfWeek,
		string(row.TimeBucket),
		row.Profit.InexactFloat64(),
		row.ROI,
		row.CumulativeProfit.InexactFloat64(),
		row.RecordIndex,
	}
}

// WriteCSV writes rows as a delimited flat file with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(record(row)); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", row.RecordIndex, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes rows to a workbook with a Tournaments sheet and a Summary sheet.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rowsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(rowsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := cells(row)
		if err := f.SetSheetRow(rowsSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := writeSummarySheet(f, Summarize(rows)); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, s Summary) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	lines := [][]interface{}{
		{"Total Tournaments", s.TotalTournaments},
		{"Total Entries", s.TotalEntries},
		{"Total Buy-in", s.TotalBuyIn.InexactFloat64()},
		{"Total Prize", s.TotalPrize.InexactFloat64()},
		{"Total Profit", s.TotalProfit.InexactFloat64()},
		{"Average Profit", s.AverageProfit.InexactFloat64()},
		{"Average Buy-in", s.AverageBuyIn.InexactFloat64()},
		{"In The Money (%)", s.InTheMoney},
		{"Average ROI (%)", s.AverageROI},
	}
	for i, line := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &line); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return nil
}
