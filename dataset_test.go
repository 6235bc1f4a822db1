package mindrisk

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDatasetCSV(t *testing.T) {
	input := "\ufefflabel,text,source\n" +
		"High,\"I feel hopeless, and alone\",forum\n" +
		" low ,Had a lovely day,survey\n" +
		"critical,unknown label,survey\n" +
		"moderate,   ,survey\n" +
		"moderate\n" +
		"moderate,Work has been stressful,survey\n"

	ds, err := LoadDatasetCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"I feel hopeless, and alone", "Had a lovely day", "Work has been stressful"}, ds.Texts)
	assert.Equal(t, []string{"high", "low", "moderate"}, ds.Labels)
	assert.Equal(t, 3, ds.Skipped)
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, map[RiskLevel]int{RiskHigh: 1, RiskLow: 1, RiskModerate: 1}, ds.LabelCounts())
}

func TestLoadDatasetCSVErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
		desc  string
	}{
		{"", "dataset is empty", "no header"},
		{"text,category\nhello,low\n", "CSV must have 'text' and 'label' columns", "missing label column"},
		{"text,label\n\"unterminated,low\n", "reading dataset", "malformed quoting"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := LoadDatasetCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadDatasetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("text,label\nfine,low\n"), 0o644))

	ds, err := LoadDatasetFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())

	_, err = LoadDatasetFile(filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
