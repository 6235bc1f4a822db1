package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tsawler/mindrisk"
)

var (
	scorePHQ9 []int
	scoreGAD7 []int
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score PHQ-9 and GAD-7 questionnaires",
	Long: `Score PHQ-9 (nine items) and GAD-7 (seven items) responses, each item 0 to 3.
An instrument with the wrong number of items or an out-of-range item is
skipped.`,
	Example: `
  mindrisk score --phq9 1,2,1,0,3,2,1,1,0
  mindrisk score --phq9 0,0,0,0,0,0,0,0,0 --gad7 2,2,3,1,2,2,1 --output json`,
	Args: cobra.NoArgs,
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().IntSliceVar(&scorePHQ9, "phq9", nil, "nine comma-separated PHQ-9 item responses")
	scoreCmd.Flags().IntSliceVar(&scoreGAD7, "gad7", nil, "seven comma-separated GAD-7 item responses")
}

func runScore(cmd *cobra.Command, args []string) error {
	if len(scorePHQ9) == 0 && len(scoreGAD7) == 0 {
		return errors.New("provide --phq9, --gad7 or both")
	}
	engine, err := newEngine()
	if err != nil {
		return err
	}

	result := engine.Scorer().PredictFromQuestionnaire(mindrisk.QuestionnaireResponses{
		PHQ9: scorePHQ9,
		GAD7: scoreGAD7,
	})
	return render(cmd, result, func(w io.Writer) {
		printQuestionnaire(w, result)
	})
}

func printQuestionnaire(w io.Writer, q mindrisk.QuestionnaireResult) {
	fmt.Fprintf(w, "Risk level: %s\n", q.RiskLevel)

	conditions := make([]string, 0, len(q.Scores))
	for c := range q.Scores {
		conditions = append(conditions, string(c))
	}
	sort.Strings(conditions)
	var rows [][]string
	for _, c := range conditions {
		cond := mindrisk.Condition(c)
		rows = append(rows, []string{c, fmt.Sprint(q.Scores[cond]), string(q.Severity[cond])})
	}
	if len(rows) > 0 {
		fmt.Fprintln(w)
		printTable(w, []string{"CONDITION", "SCORE", "SEVERITY"}, rows)
	} else {
		fmt.Fprintln(w, "No valid instrument responses.")
	}

	if len(q.RecommendationsPriority) > 0 {
		fmt.Fprintln(w, "\nPriorities:")
		for _, p := range q.RecommendationsPriority {
			fmt.Fprintf(w, "  - %s\n", p)
		}
	}
}
