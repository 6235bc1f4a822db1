package mindrisk

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Dataset is a labeled training corpus.
type Dataset struct {
	Texts   []string
	Labels  []string
	Skipped int // rows dropped for an invalid label or empty text
}

// Len returns the number of samples.
func (d Dataset) Len() int {
	return len(d.Texts)
}

// LabelCounts returns the number of samples per label.
func (d Dataset) LabelCounts() map[RiskLevel]int {
	counts := make(map[RiskLevel]int)
	for _, l := range d.Labels {
		counts[RiskLevel(l)]++
	}
	return counts
}

// LoadDatasetFile reads a CSV corpus from path.
func LoadDatasetFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, err
	}
	defer f.Close()
	return LoadDatasetCSV(f)
}

// LoadDatasetCSV reads a corpus whose header names "text" and "label"
// columns, in any order. Labels are trimmed and lower-cased; rows with a
// label other than low, moderate or high, or with empty text, are skipped.
func LoadDatasetCSV(r io.Reader) (Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Dataset{}, errors.New("dataset is empty")
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("reading header: %w", err)
	}
	textCol, labelCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case "text":
			textCol = i
		case "label":
			labelCol = i
		}
	}
	if textCol < 0 || labelCol < 0 {
		return Dataset{}, errors.New("CSV must have 'text' and 'label' columns")
	}

	var ds Dataset
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ds, fmt.Errorf("reading dataset: %w", err)
		}
		if textCol >= len(record) || labelCol >= len(record) {
			ds.Skipped++
			continue
		}
		text := strings.TrimSpace(record[textCol])
		level, err := ParseRiskLevel(record[labelCol])
		if err != nil || text == "" {
			ds.Skipped++
			continue
		}
		ds.Texts = append(ds.Texts, text)
		ds.Labels = append(ds.Labels, string(level))
	}
	return ds, nil
}
