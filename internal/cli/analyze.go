package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/mindrisk"
)

var analyzeSentences bool

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [text...]",
	Short: "Analyze free text for risk indicators",
	Long: `Analyze text with the keyword lexicon: sentiment, depression, anxiety and
stress indicators, a text risk level and short insights. Arguments are joined
with spaces; with no arguments the text is read from stdin.`,
	Example: `
  mindrisk analyze "I feel completely hopeless"
  mindrisk analyze --sentences < journal.txt`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeSentences, "sentences", false, "also analyze each sentence separately")
}

// inputText joins args, or reads stdin when there are none.
func inputText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := inputText(cmd, args)
	if err != nil {
		return err
	}
	engine, err := newEngine()
	if err != nil {
		return err
	}

	if analyzeSentences {
		result := engine.Analyzer().AnalyzeSentences(text)
		if !result.Overall.OK() {
			return errors.New(result.Overall.Error)
		}
		return render(cmd, result, func(w io.Writer) {
			printTextAnalysis(w, result.Overall)
			fmt.Fprintf(w, "\nPeak sentence risk: %s\n", result.Peak)
			var rows [][]string
			for _, s := range result.Sentences {
				rows = append(rows, []string{string(s.Analysis.RiskLevel), s.Sentence.Text})
			}
			printTable(w, []string{"RISK", "SENTENCE"}, rows)
		})
	}

	result := engine.Analyzer().Analyze(text)
	if !result.OK() {
		return errors.New(result.Error)
	}
	return render(cmd, result, func(w io.Writer) {
		printTextAnalysis(w, result)
	})
}

func printTextAnalysis(w io.Writer, ta mindrisk.TextAnalysis) {
	fmt.Fprintf(w, "Risk level: %s\n", ta.RiskLevel)
	fmt.Fprintf(w, "Sentiment:  %s (polarity %.3f, subjectivity %.3f)\n",
		ta.Sentiment.Interpretation, ta.Sentiment.Polarity, ta.Sentiment.Subjectivity)
	fmt.Fprintf(w, "Words:      %d\n", ta.WordCount)

	rows := [][]string{
		indicatorRow("depression", ta.Indicators.Depression),
		indicatorRow("anxiety", ta.Indicators.Anxiety),
		indicatorRow("stress", ta.Indicators.Stress),
	}
	if len(ta.Indicators.Positive.KeywordsFound) > 0 {
		rows = append(rows, []string{"positive", "-", strings.Join(ta.Indicators.Positive.KeywordsFound, ", ")})
	}
	fmt.Fprintln(w)
	printTable(w, []string{"INDICATOR", "LEVEL", "KEYWORDS"}, rows)

	if len(ta.Insights) > 0 {
		fmt.Fprintln(w)
		for _, insight := range ta.Insights {
			fmt.Fprintf(w, "[%s] %s\n", insight.Type, insight.Message)
		}
	}
}

func indicatorRow(name string, in mindrisk.Indicator) []string {
	return []string{name, in.Level.String(), strings.Join(in.KeywordsFound, ", ")}
}
