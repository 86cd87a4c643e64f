package extractor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aqlanhadi/pokertrack/extractor/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const summaryA = `Tournament #1001, Zodiac Rat, Hold'em No Limit
Buy-in: $10+$1
100 Players
Total Prize Pool: $1,000
Tournament started 2023/09/06 19:00:00
2nd : $200.00
You received a total of $200.00.
You finished the tournament in 2nd place.
Good luck!
`

const summaryB = `Tournament #1002, Turbo Hyper, Hold'em No Limit
Buy-in: $5
50 Players
Total Prize Pool: $250
Tournament started 2023/09/05 12:00:00
You finished the tournament in 30th place.
You received a total of 0 chips.
You made 1 re-entries.
Good luck!
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessReader(t *testing.T) {
	viper.Reset()
	p := NewProcessor(nil)

	report, err := p.ProcessReader(strings.NewReader(summaryA), "/tmp/GG - Tournament #1001.txt")
	require.NoError(t, err)

	assert.Equal(t, "GG - Tournament #1001", report.Source)
	assert.Equal(t, "1001", report.TournamentID)
	assert.Equal(t, "2", report.Rank)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestProcessReader_ReadFailure(t *testing.T) {
	p := NewProcessor(nil)

	_, err := p.ProcessReader(failingReader{}, "broken.txt")
	assert.Error(t, err)
}

func TestProcessFile_Missing(t *testing.T) {
	p := NewProcessor(nil)

	_, err := p.ProcessFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestProcessPath_Directory(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", summaryA)
	writeFile(t, dir, "b.TXT", summaryB)
	writeFile(t, dir, "notes.md", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.txt"), 0o755))

	p := NewProcessor(nil)
	reports, errs := p.ProcessPath(dir)

	assert.Empty(t, errs)
	require.Len(t, reports, 2)
	assert.Equal(t, "1001", reports[0].TournamentID)
	assert.Equal(t, "1002", reports[1].TournamentID)
	assert.Equal(t, 2, reports[1].EntryCount)
}

func TestProcessPath_SingleFile(t *testing.T) {
	viper.Reset()
	path := writeFile(t, t.TempDir(), "a.txt", summaryA)

	reports, errs := NewProcessor(nil).ProcessPath(path)

	assert.Empty(t, errs)
	require.Len(t, reports, 1)
}

func TestProcessPath_Missing(t *testing.T) {
	reports, errs := NewProcessor(nil).ProcessPath(filepath.Join(t.TempDir(), "nope"))

	assert.Empty(t, reports)
	assert.Len(t, errs, 1)
}

func TestBuildCollection(t *testing.T) {
	viper.Reset()
	p := NewProcessor(nil)

	rows := p.BuildCollection([]Input{
		{Source: "a", Text: summaryA},
		{Source: "b", Text: summaryB},
		{Source: "empty", Text: ""},
	})

	require.Len(t, rows, 3)
	// ordered by start time, the report without one last
	assert.Equal(t, "1002", rows[0].TournamentID)
	assert.Equal(t, "1001", rows[1].TournamentID)
	assert.Equal(t, common.Unknown, rows[2].TournamentID)

	assert.Equal(t, "-10", rows[0].Profit.String())
	assert.Equal(t, "189", rows[1].Profit.String())
	assert.Equal(t, "179", rows[1].CumulativeProfit.String())
	assert.Equal(t, "179", rows[2].CumulativeProfit.String())
	assert.Equal(t, 2, rows[2].RecordIndex)
}

func TestExecuteAgainstPath(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", summaryA)

	rows, errs := NewProcessor(nil).ExecuteAgainstPath(dir)
	assert.Empty(t, errs)
	require.Len(t, rows, 1)
	assert.Equal(t, "LOW", string(rows[0].BuyInCategory))
}
