package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validateOutput(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unsupported output format %q (use text, json or yaml)", format)
}

// render writes data in the selected output format, calling text for the
// human-readable form.
func render(cmd *cobra.Command, data interface{}, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	switch viper.GetString("output") {
	case formatJSON:
		return printJSON(w, data)
	case formatYAML:
		return printYAML(w, data)
	default:
		text(w)
		return nil
	}
}

// printJSON outputs data as indented JSON
func printJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// printYAML outputs data as YAML. Values go through JSON first so the JSON
// field names and marshalers apply.
func printYAML(w io.Writer, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	var generic interface{}
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return err
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(generic); err != nil {
		return err
	}
	return encoder.Close()
}

// printTable outputs rows under headers with padded columns
func printTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	line := func(cells []string) {
		for i, cell := range cells {
			if i < len(widths) {
				fmt.Fprintf(w, "%-*s  ", widths[i], cell)
			}
		}
		fmt.Fprintln(w)
	}
	line(headers)
	seps := make([]string, len(headers))
	for i := range seps {
		seps[i] = strings.Repeat("-", widths[i])
	}
	line(seps)
	for _, row := range rows {
		line(row)
	}
}

// probabilityRows renders a class distribution sorted by class name.
func probabilityRows(probs map[string]float64) [][]string {
	classes := make([]string, 0, len(probs))
	for c := range probs {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	rows := make([][]string, len(classes))
	for i, c := range classes {
		rows[i] = []string{c, fmt.Sprintf("%.4f", probs[c])}
	}
	return rows
}
