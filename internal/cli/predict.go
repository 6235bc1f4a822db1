package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tsawler/mindrisk"
)

// predictCmd represents the predict command
var predictCmd = &cobra.Command{
	Use:   "predict [text...]",
	Short: "Classify texts with the trained model",
	Long:  `Classify each argument with the trained classifier and report its risk level and class probabilities.`,
	Example: `
  mindrisk predict "I can't stop worrying about everything"
  mindrisk predict "first text" "second text" --output json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPredict,
}

func init() {
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	models := engine.Models()
	if !models.IsTrained() {
		return fmt.Errorf("%w: run 'mindrisk train' first", mindrisk.ErrNotTrained)
	}

	predictions := models.PredictBatch(args)
	return render(cmd, predictions, func(w io.Writer) {
		printPredictions(w, args, predictions)
	})
}

func printPredictions(w io.Writer, texts []string, predictions []mindrisk.Prediction) {
	for i, p := range predictions {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%q\n", texts[i])
		if p.Fallback {
			fmt.Fprintf(w, "  error: %s\n", p.Error)
			continue
		}
		fmt.Fprintf(w, "  risk: %s (confidence %.4f, %s)\n", p.RiskLevel, p.Confidence, p.ModelType)
		printTable(w, []string{"CLASS", "PROBABILITY"}, probabilityRows(p.Probabilities))
	}
}
