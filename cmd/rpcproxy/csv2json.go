package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newCSV2JSONCmd() *cobra.Command {
	var delimiter string

	cmd := &cobra.Command{
		Use:   "csv2json <path>",
		Short: "Convert a CSV/TSV fixture file to a JSON array of objects, keyed by its header row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			r := csv.NewReader(f)
			if delimiter != "" {
				if delimiter == `\t` {
					delimiter = "\t"
				}
				runes := []rune(delimiter)
				r.Comma = runes[0]
			}

			records, err := r.ReadAll()
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "[]")
				return nil
			}

			header := records[0]
			rows := make([]map[string]string, 0, len(records)-1)
			for _, record := range records[1:] {
				row := make(map[string]string, len(header))
				for i, col := range header {
					if i < len(record) {
						row[col] = record[i]
					}
				}
				rows = append(rows, row)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		},
	}

	cmd.Flags().StringVar(&delimiter, "delimiter", "", "field delimiter (default ',', use '\\t' for TSV)")
	return cmd
}
