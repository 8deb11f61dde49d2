package jobs

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// rawRow is the untyped shape of one CSV record. Decoding through
// mapstructure keeps the schema boundary explicit: anything that does not fit
// this struct never reaches the matching core.
type rawRow struct {
	ID             string `mapstructure:"id"`
	Title          string `mapstructure:"title"`
	Description    string `mapstructure:"description"`
	RequiredSkills string `mapstructure:"requiredskills"`
	Seniority      string `mapstructure:"seniority"`
}

// LoadCSV reads job postings from a CSV file. Expected columns: title,
// description, requiredSkills (delimited list), seniority; id is optional and
// defaults to the row number. Header matching is case-insensitive.
func LoadCSV(path string) (*Jobs, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open jobs file: %w", err)
	}
	defer file.Close()

	postings, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("jobs file %q: %w", path, err)
	}
	return postings, nil
}

// ReadCSV parses postings from CSV content.
func ReadCSV(r io.Reader) (*Jobs, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make([]string, len(header))
	for i, col := range header {
		columns[i] = strings.ToLower(strings.TrimSpace(col))
	}

	result := &Jobs{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row := make(map[string]string, len(columns))
		for i, value := range record {
			if i < len(columns) {
				row[columns[i]] = value
			}
		}

		var raw rawRow
		if err := mapstructure.Decode(row, &raw); err != nil {
			return nil, fmt.Errorf("line %d: decode row: %w", line, err)
		}

		posting := &Posting{
			ID:             strings.TrimSpace(raw.ID),
			Title:          strings.TrimSpace(raw.Title),
			Description:    strings.TrimSpace(raw.Description),
			RequiredSkills: ParseSkills(raw.RequiredSkills),
			Seniority:      ParseSeniority(raw.Seniority),
		}
		if posting.ID == "" {
			posting.ID = strconv.Itoa(line - 1)
		}

		if err := posting.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		result.Items = append(result.Items, posting)
	}

	return result, nil
}
