package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the trained model's details",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		info := engine.Models().Info()
		return render(cmd, info, func(w io.Writer) {
			if !info.IsTrained {
				fmt.Fprintln(w, "No trained model. Run 'mindrisk train' to create one.")
				return
			}
			fmt.Fprintf(w, "Model type: %s\n", info.ModelType)
			fmt.Fprintf(w, "Classes:    %s\n", strings.Join(info.Classes, ", "))
			fmt.Fprintf(w, "Features:   %d\n", info.FeatureCount)
			fmt.Fprintf(w, "Location:   %s\n", info.ModelPath)
			fmt.Fprintf(w, "Run ID:     %s\n", info.RunID)
		})
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
