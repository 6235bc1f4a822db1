package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tsawler/mindrisk"
)

var (
	trainData      string
	trainModel     string
	trainTestSize  float64
	trainNoTest    bool
	trainTestTexts []string
)

// defaultTestTexts are classified after training unless --test-texts or
// --no-test is given.
var defaultTestTexts = []string{
	"I'm feeling happy and optimistic about life",
	"I've been feeling anxious and worried lately",
	"I feel completely hopeless and don't want to go on",
}

// trainOutput is a training result plus the sample predictions made with
// the new model.
type trainOutput struct {
	*mindrisk.TrainResult
	SamplePredictions []samplePrediction `json:"sample_predictions,omitempty"`
}

type samplePrediction struct {
	Text string `json:"text"`
	mindrisk.Prediction
}

// trainCmd represents the train command
var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the text risk classifier",
	Long: `Train a TF-IDF classifier on a labeled CSV corpus, or on the built-in
corpus when --data is omitted, and save it to the model directory.

The CSV needs a header with "text" and "label" columns; labels are low,
moderate or high. Interrupting training leaves the previous model in place.
After a successful run a few sample texts are classified with the new model.`,
	Example: `
  mindrisk train                                   # built-in corpus, configured model
  mindrisk train --data posts.csv --model random_forest
  mindrisk train --data posts.csv --output json    # metrics as JSON
  mindrisk train --test-texts "I can't sleep" --test-texts "great week"
  mindrisk train --no-test`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)

	trainCmd.Flags().StringVar(&trainData, "data", "", "CSV corpus with text and label columns")
	trainCmd.Flags().StringVar(&trainModel, "model", "", "model type (logistic_regression, random_forest, gradient_boosting)")
	trainCmd.Flags().Float64Var(&trainTestSize, "test-size", 0, "held-out fraction, between 0 and 1")
	trainCmd.Flags().BoolVar(&trainNoTest, "no-test", false, "skip sample predictions after training")
	trainCmd.Flags().StringArrayVar(&trainTestTexts, "test-texts", nil, "text to classify after training (repeatable)")
}

func runTrain(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	req := mindrisk.TrainRequest{
		ModelType: mindrisk.ModelType(trainModel),
		TestSize:  trainTestSize,
	}
	if trainData != "" {
		ds, err := mindrisk.LoadDatasetFile(trainData)
		if err != nil {
			return fmt.Errorf("loading dataset: %w", err)
		}
		logger.WithFields(logrus.Fields{
			"file":    trainData,
			"samples": ds.Len(),
			"skipped": ds.Skipped,
		}).Info("Dataset loaded")
		req.Texts, req.Labels = ds.Texts, ds.Labels
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	models := engine.Models()
	result, err := models.Train(ctx, req)
	if err != nil {
		return err
	}

	out := trainOutput{TrainResult: result}
	if !trainNoTest {
		texts := trainTestTexts
		if len(texts) == 0 {
			texts = defaultTestTexts
		}
		for i, p := range models.PredictBatch(texts) {
			out.SamplePredictions = append(out.SamplePredictions, samplePrediction{Text: texts[i], Prediction: p})
		}
	}
	return render(cmd, out, func(w io.Writer) {
		printTrainResult(w, result)
		if len(out.SamplePredictions) == 0 {
			return
		}
		texts := make([]string, len(out.SamplePredictions))
		predictions := make([]mindrisk.Prediction, len(out.SamplePredictions))
		for i, sp := range out.SamplePredictions {
			texts[i], predictions[i] = sp.Text, sp.Prediction
		}
		fmt.Fprintln(w, "\nSample predictions:")
		printPredictions(w, texts, predictions)
	})
}

func printTrainResult(w io.Writer, r *mindrisk.TrainResult) {
	fmt.Fprintf(w, "Trained %s on %d samples (%d held out) in %.1fs\n",
		r.ModelType, r.TrainingSamples, r.TestSamples, r.TrainingSeconds)
	fmt.Fprintf(w, "Accuracy:          %.4f\n", r.Accuracy)
	fmt.Fprintf(w, "Weighted F1:       %.4f\n", r.F1Score)
	fmt.Fprintf(w, "Cross-validation:  %.4f (+/- %.4f)\n", r.CrossValMean, r.CrossValStd)
	if r.ClassificationReport != nil {
		fmt.Fprintln(w)
		var rows [][]string
		for _, label := range r.ClassificationReport.Labels() {
			m := r.ClassificationReport.Classes[label]
			rows = append(rows, []string{
				label,
				fmt.Sprintf("%.2f", m.Precision),
				fmt.Sprintf("%.2f", m.Recall),
				fmt.Sprintf("%.2f", m.F1Score),
				fmt.Sprint(m.Support),
			})
		}
		printTable(w, []string{"CLASS", "PRECISION", "RECALL", "F1", "SUPPORT"}, rows)
	}
	if !r.Persisted {
		fmt.Fprintln(w, "\nWarning: the model could not be saved and will be lost on exit.")
	}
	fmt.Fprintf(w, "\nRun ID: %s\n", r.RunID)
}
