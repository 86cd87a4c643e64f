package common

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

const utf8BOM = "\ufeff"

// SplitLines splits report text into lines. A trailing newline does not
// produce an extra empty line and CRLF endings are accepted.
func SplitLines(text string) []string {
	text = strings.TrimPrefix(text, utf8BOM)
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{}
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// ReadLines reads a whole report from reader and splits it into lines.
func ReadLines(reader io.Reader) ([]string, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	return SplitLines(string(content)), nil
}

// ReadLinesFromFile reads the report stored at path.
func ReadLinesFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadLines(file)
}

// SourceName returns the identifier used for a report file in logs and exports.
func SourceName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
