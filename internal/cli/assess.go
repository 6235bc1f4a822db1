package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tsawler/mindrisk"
)

var (
	assessPHQ9    []int
	assessGAD7    []int
	assessText    string
	assessEmotion string
)

// assessCmd represents the assess command
var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Fuse questionnaire, text and facial emotion into one assessment",
	Long: `Run every component that has input and fuse the results into an overall
risk level, a confidence grade, concerns, positive indicators and
recommendations. The trained classifier contributes when a model exists.`,
	Example: `
  mindrisk assess --phq9 2,2,1,2,1,1,2,1,0 --text "I can't sleep and feel so alone" --emotion sad
  mindrisk assess --gad7 3,3,2,3,2,2,3 --output json`,
	Args: cobra.NoArgs,
	RunE: runAssess,
}

func init() {
	rootCmd.AddCommand(assessCmd)

	assessCmd.Flags().IntSliceVar(&assessPHQ9, "phq9", nil, "nine comma-separated PHQ-9 item responses")
	assessCmd.Flags().IntSliceVar(&assessGAD7, "gad7", nil, "seven comma-separated GAD-7 item responses")
	assessCmd.Flags().StringVar(&assessText, "text", "", "free text to analyze")
	assessCmd.Flags().StringVar(&assessEmotion, "emotion", "", "detected facial emotion (happy, sad, fearful, angry)")
}

func runAssess(cmd *cobra.Command, args []string) error {
	in := mindrisk.Input{Text: assessText, FacialEmotion: assessEmotion}
	if len(assessPHQ9) > 0 || len(assessGAD7) > 0 {
		in.Questionnaire = &mindrisk.QuestionnaireResponses{PHQ9: assessPHQ9, GAD7: assessGAD7}
	}
	if in.Questionnaire == nil && in.Text == "" && in.FacialEmotion == "" {
		return errors.New("provide at least one of --phq9, --gad7, --text or --emotion")
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}
	report, err := engine.Assess(cmd.Context(), in)
	if err != nil {
		return err
	}
	return render(cmd, report, func(w io.Writer) {
		printReport(w, report)
	})
}

func printReport(w io.Writer, r mindrisk.Report) {
	a := r.Assessment
	fmt.Fprintf(w, "Overall risk: %s (confidence %s)\n\n", a.OverallRisk, a.Confidence)
	fmt.Fprintln(w, a.Summary)

	var rows [][]string
	if r.Questionnaire != nil {
		rows = append(rows, []string{"questionnaire", string(r.Questionnaire.RiskLevel)})
	}
	if r.TextAnalysis != nil && r.TextAnalysis.OK() {
		rows = append(rows, []string{"text analysis", string(r.TextAnalysis.RiskLevel)})
	}
	if r.Prediction != nil && !r.Prediction.Fallback {
		rows = append(rows, []string{"classifier", fmt.Sprintf("%s (%.2f)", r.Prediction.RiskLevel, r.Prediction.Confidence)})
	}
	if r.FacialEmotion != "" {
		rows = append(rows, []string{"facial emotion", r.FacialEmotion})
	}
	if len(rows) > 0 {
		fmt.Fprintln(w)
		printTable(w, []string{"SOURCE", "RESULT"}, rows)
	}

	sections := []struct {
		title string
		items []mindrisk.Recommendation
	}{
		{"Immediate actions", r.Recommendations.ImmediateActions},
		{"Coping strategies", r.Recommendations.CopingStrategies},
		{"Self-care", r.Recommendations.SelfCare},
		{"Lifestyle changes", r.Recommendations.LifestyleChanges},
		{"Professional resources", r.Recommendations.ProfessionalResources},
	}
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s:\n", s.title)
		for _, rec := range s.items {
			fmt.Fprintf(w, "  - %s: %s\n", rec.Title, rec.Description)
			for _, res := range rec.Resources {
				fmt.Fprintf(w, "      %s %s\n", res.Name, res.Contact)
			}
		}
	}
}
