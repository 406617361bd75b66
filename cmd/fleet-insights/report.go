package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ukydev/fleet-insights/internal/reports"
)

var reportJSON bool

var reportCmd = &cobra.Command{
	Use:   "report [name]",
	Short: "Run a single report and print the result",
	Long:  `Runs one report from the catalog against the configured dataset. Without a name, lists the available reports.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		for _, r := range reports.Catalog() {
			fmt.Printf("%-28s %s\n", r.Name, r.Title)
		}
		return nil
	}

	report, ok := reports.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown report %q (run without arguments to list)", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	records, err := loadDataset(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	table := report.Run(records)
	if reportJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(table)
	}

	printTable(table)
	return nil
}

func printTable(table reports.Table) {
	fmt.Printf("=== %s ===\n", table.Title)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for i, col := range table.Columns {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, col)
	}
	fmt.Fprintln(w)
	for _, row := range table.Rows {
		for i, col := range table.Columns {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, formatCell(row[col]))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case *float64:
		if val == nil {
			return "-"
		}
		return fmt.Sprintf("%.2f", *val)
	case float64:
		return fmt.Sprintf("%.2f", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
