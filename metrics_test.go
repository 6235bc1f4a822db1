package mindrisk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassificationReport(t *testing.T) {
	truth := []string{"a", "a", "b", "b"}
	pred := []string{"a", "b", "b", "b"}
	report := classificationReport(truth, pred)

	assert.Equal(t, 0.75, report.Accuracy)
	assert.Equal(t, []string{"a", "b"}, report.Labels())

	a := report.Classes["a"]
	assert.Equal(t, 1.0, a.Precision)
	assert.Equal(t, 0.5, a.Recall)
	assert.InDelta(t, 2.0/3.0, a.F1Score, 1e-12)
	assert.Equal(t, 2, a.Support)

	b := report.Classes["b"]
	assert.InDelta(t, 2.0/3.0, b.Precision, 1e-12)
	assert.Equal(t, 1.0, b.Recall)
	assert.InDelta(t, 0.8, b.F1Score, 1e-12)

	assert.InDelta(t, (2.0/3.0+0.8)/2, report.MacroAvg.F1Score, 1e-12)
	assert.InDelta(t, report.MacroAvg.F1Score, report.WeightedAvg.F1Score, 1e-12, "equal supports")
	assert.Equal(t, 4, report.WeightedAvg.Support)
}

func TestClassificationReportZeroDivision(t *testing.T) {
	report := classificationReport([]string{"a", "a"}, []string{"a", "c"})
	c := report.Classes["c"]
	assert.Equal(t, 0, c.Support)
	assert.Zero(t, c.Precision)
	assert.Zero(t, c.Recall)
	assert.Zero(t, c.F1Score)
	assert.Equal(t, []string{"a", "c"}, report.Labels())
}

func TestClassificationReportJSON(t *testing.T) {
	report := classificationReport([]string{"low", "high"}, []string{"low", "high"})
	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{"low", "high", "accuracy", "macro avg", "weighted avg"} {
		assert.Contains(t, decoded, key)
	}

	var low map[string]float64
	require.NoError(t, json.Unmarshal(decoded["low"], &low))
	assert.Equal(t, map[string]float64{"precision": 1, "recall": 1, "f1-score": 1, "support": 1}, low)
}
