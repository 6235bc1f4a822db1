package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/mindrisk"
)

// resetFlags restores every flag to its default so runs do not leak into
// each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeCorpusCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.Write([]string{"text", "label"}))
	texts, labels := mindrisk.BuiltinCorpus()
	for i := range texts {
		require.NoError(t, w.Write([]string{texts[i], labels[i]}))
	}
	w.Flush()
	require.NoError(t, w.Error())
	return path
}

func TestScoreCommand(t *testing.T) {
	out, err := executeCommand(t, "", "score", "--phq9", "3,3,3,3,3,3,3,3,3", "--output", "json")
	require.NoError(t, err)

	var result mindrisk.QuestionnaireResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 27, result.Scores[mindrisk.Depression])
	assert.Equal(t, mindrisk.RiskHigh, result.RiskLevel)

	out, err = executeCommand(t, "", "score", "--gad7", "0,0,0,0,0,0,0")
	require.NoError(t, err)
	assert.Contains(t, out, "Risk level: low")
	assert.Contains(t, out, "anxiety")

	_, err = executeCommand(t, "", "score")
	assert.Error(t, err)
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := executeCommand(t, "", "analyze", "I", "feel", "completely", "hopeless")
	require.NoError(t, err)
	assert.Contains(t, out, "Risk level: high")
	assert.Contains(t, out, "hopeless")

	out, err = executeCommand(t, "I had a great day. Then I felt hopeless.", "analyze", "--sentences", "-o", "json")
	require.NoError(t, err)
	var narrative mindrisk.NarrativeAnalysis
	require.NoError(t, json.Unmarshal([]byte(out), &narrative))
	assert.Len(t, narrative.Sentences, 2)
	assert.Equal(t, mindrisk.RiskHigh, narrative.Peak)

	_, err = executeCommand(t, "", "analyze")
	assert.EqualError(t, err, mindrisk.ErrInvalidText.Error())
}

func TestTrainPredictInfo(t *testing.T) {
	dir := t.TempDir()

	out, err := executeCommand(t, "", "info", "--model-dir", dir, "-o", "json")
	require.NoError(t, err)
	var info mindrisk.ModelInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.False(t, info.IsTrained)

	_, err = executeCommand(t, "", "predict", "--model-dir", dir, "hello")
	assert.ErrorIs(t, err, mindrisk.ErrNotTrained)

	out, err = executeCommand(t, "", "train", "--model-dir", dir, "--data", writeCorpusCSV(t), "-o", "json")
	require.NoError(t, err)
	var result mindrisk.TrainResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Success)
	assert.True(t, result.Persisted)
	assert.Equal(t, mindrisk.LogisticRegressionModel, result.ModelType)
	assert.Contains(t, out, "sample_predictions")

	out, err = executeCommand(t, "", "predict", "--model-dir", dir, "-o", "json", "I feel hopeless", "what a lovely day")
	require.NoError(t, err)
	var predictions []mindrisk.Prediction
	require.NoError(t, json.Unmarshal([]byte(out), &predictions))
	require.Len(t, predictions, 2)
	for _, p := range predictions {
		assert.False(t, p.Fallback)
		assert.Len(t, p.Probabilities, 3)
	}

	out, err = executeCommand(t, "", "info", "--model-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Model type: logistic_regression")
	assert.Contains(t, out, result.RunID)
}

func TestTrainSamplePredictions(t *testing.T) {
	dir := t.TempDir()

	out, err := executeCommand(t, "", "train", "--model-dir", dir, "-o", "json",
		"--test-texts", "I feel hopeless, alone and empty", "--test-texts", "a calm week")
	require.NoError(t, err)
	var withSamples trainOutput
	require.NoError(t, json.Unmarshal([]byte(out), &withSamples))
	assert.True(t, withSamples.Success)
	require.Len(t, withSamples.SamplePredictions, 2)
	assert.Equal(t, "I feel hopeless, alone and empty", withSamples.SamplePredictions[0].Text)
	assert.Equal(t, "a calm week", withSamples.SamplePredictions[1].Text)
	for _, sp := range withSamples.SamplePredictions {
		assert.False(t, sp.Fallback)
		assert.Len(t, sp.Probabilities, 3)
	}

	out, err = executeCommand(t, "", "train", "--model-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Sample predictions:")
	for _, text := range defaultTestTexts {
		assert.Contains(t, out, fmt.Sprintf("%q", text))
	}

	out, err = executeCommand(t, "", "train", "--model-dir", dir, "--no-test", "-o", "json")
	require.NoError(t, err)
	assert.NotContains(t, out, "sample_predictions")
}

func TestTrainCommandRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	_, err := executeCommand(t, "", "train", "--model-dir", dir, "--model", "svm")
	assert.ErrorIs(t, err, mindrisk.ErrUnknownModelType)

	_, err = executeCommand(t, "", "train", "--model-dir", dir, "--data", filepath.Join(dir, "absent.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAssessCommand(t *testing.T) {
	out, err := executeCommand(t, "", "assess",
		"--model-dir", t.TempDir(),
		"--phq9", "3,3,3,3,3,3,3,3,3",
		"--text", "I feel completely hopeless",
		"--emotion", "sad",
		"-o", "yaml")
	require.NoError(t, err)

	var report map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	assessment, ok := report["assessment"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "high", assessment["overall_risk"])
	assert.Equal(t, "high", assessment["confidence"])
	assert.NotContains(t, report, "ml_prediction")

	out, err = executeCommand(t, "", "assess", "--model-dir", t.TempDir(), "--emotion", "happy")
	require.NoError(t, err)
	assert.Contains(t, out, "Overall risk: low (confidence low)")

	_, err = executeCommand(t, "", "assess", "--model-dir", t.TempDir())
	assert.Error(t, err)
}

func TestUnsupportedOutputFormat(t *testing.T) {
	_, err := executeCommand(t, "", "score", "--phq9", "0,0,0,0,0,0,0,0,0", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestLogFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2025, 12, 23, 20, 14, 4, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "Could not load saved model\n",
		Data:    logrus.Fields{"dir": "models", "attempt": 2},
	}
	out, err := (&LogFormatter{}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[2025-12-23 20:14:04] [warn ] Could not load saved model | attempt=2, dir=models\n", string(out))

	entry.Data = logrus.Fields{}
	entry.Level = logrus.InfoLevel
	out, err = (&LogFormatter{}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[2025-12-23 20:14:04] [info ] Could not load saved model\n", string(out))
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mindrisk.log")
	_, err := executeCommand(t, "", "score", "--phq9", "0,0,0,0,0,0,0,0,0", "--log-file", path)
	require.NoError(t, err)

	logger.Error("written to file")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")

	resetFlags(rootCmd)
	require.NoError(t, initLogging())
}
