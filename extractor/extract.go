package extractor

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aqlanhadi/pokertrack/analysis"
	"github.com/aqlanhadi/pokertrack/extractor/common"
	"github.com/aqlanhadi/pokertrack/extractor/currency"
	"github.com/aqlanhadi/pokertrack/extractor/gg_summary"
)

// ReportExtension is the extension of tournament summary exports.
const ReportExtension = ".txt"

// Input is one raw tournament summary.
type Input struct {
	Source string
	Text   string
}

// Processor parses tournament summaries with a single rate table.
type Processor struct {
	extractor *gg_summary.Extractor
}

// NewProcessor creates a Processor converting amounts with rates.
func NewProcessor(rates *currency.Normalizer) *Processor {
	if rates == nil {
		rates = currency.Default()
	}
	return &Processor{extractor: gg_summary.New(rates)}
}

// ProcessText parses one summary. It never fails.
func (p *Processor) ProcessText(source, text string) common.TournamentReport {
	return p.extractor.ExtractText(source, text)
}

// ProcessReader parses one summary read from reader. Only a read failure is
// returned as an error.
func (p *Processor) ProcessReader(reader io.Reader, filename string) (common.TournamentReport, error) {
	lines, err := common.ReadLines(reader)
	if err != nil {
		return common.TournamentReport{}, fmt.Errorf("%s: failed to read: %w", filename, err)
	}
	return p.extractor.Extract(common.SourceName(filename), lines), nil
}

// ProcessFile parses the summary stored at path.
func (p *Processor) ProcessFile(path string) (common.TournamentReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return common.TournamentReport{}, fmt.Errorf("%s: failed to open file: %w", filepath.Base(path), err)
	}
	defer file.Close()
	return p.ProcessReader(file, path)
}

// ProcessPath parses a single file, or every summary in a directory. A file
// that cannot be read is reported and the rest of the batch continues.
func (p *Processor) ProcessPath(path string) ([]common.TournamentReport, []error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, []error{fmt.Errorf("failed to stat path: %w", err)}
	}

	if !info.IsDir() {
		log.Println("📄 Scanning ", path)
		report, err := p.ProcessFile(path)
		if err != nil {
			return nil, []error{err}
		}
		return []common.TournamentReport{report}, nil
	}

	log.Println("📂 Scanning ", path)
	files, err := ReportFiles(path)
	if err != nil {
		return nil, []error{err}
	}

	var reports []common.TournamentReport
	var errs []error
	for _, file := range files {
		report, err := p.ProcessFile(file)
		if err != nil {
			log.Printf("FAIL %v", err)
			errs = append(errs, err)
			continue
		}
		reports = append(reports, report)
	}
	log.Printf("Parsed %d of %d files", len(reports), len(files))

	return reports, errs
}

// ReportFiles lists the summary files directly inside dir, sorted by name.
func ReportFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ReportExtension) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// BuildCollection parses every input and returns the time-ordered table with
// derived columns.
func (p *Processor) BuildCollection(inputs []Input) []analysis.Row {
	reports := make([]common.TournamentReport, 0, len(inputs))
	for _, in := range inputs {
		reports = append(reports, p.ProcessText(in.Source, in.Text))
	}
	return analysis.Build(reports)
}

// ExecuteAgainstPath parses path and returns the time-ordered table.
func (p *Processor) ExecuteAgainstPath(path string) ([]analysis.Row, []error) {
	reports, errs := p.ProcessPath(path)
	return analysis.Build(reports), errs
}
