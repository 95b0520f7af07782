package main

import (
	"fmt"
	"os"

	"github.com/aretw0/ntmtrace/internal/adapters"
	"github.com/aretw0/ntmtrace/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [machine]",
	Short: "Export the machine as a diagram",
	Long: `Outputs a Mermaid diagram (graph LR) of the transition table, or the machine
document with --format yaml|json. --report highlights the states on a stored
report's path.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		reportID, _ := cmd.Flags().GetString("report")
		path := ""
		if len(args) > 0 {
			path = args[0]
		}

		app := newApp(cmd)
		defer app.Close()

		m, err := app.LoadMachine(path)
		if err != nil {
			fmt.Printf("Error loading machine: %v\n", err)
			os.Exit(1)
		}

		switch format {
		case "mermaid":
			var overlay *graph.GraphOverlay
			if reportID != "" {
				store, err := app.RequireStore()
				if err != nil {
					fmt.Printf("Error: %v\n", err)
					os.Exit(1)
				}
				report, err := store.Load(cmd.Context(), reportID)
				if err != nil {
					fmt.Printf("Error loading report: %v\n", err)
					os.Exit(1)
				}
				overlay = graph.OverlayFromReport(report)
			}
			fmt.Print(graph.GenerateMermaid(m, overlay))
		case "yaml", "json":
			if err := adapters.EncodeMachineDocument(os.Stdout, m, adapters.Format(format)); err != nil {
				fmt.Printf("Error encoding machine: %v\n", err)
				os.Exit(1)
			}
		default:
			fmt.Printf("Unknown format: %s. Supported: mermaid, yaml, json\n", format)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("format", "mermaid", "Output format: mermaid, yaml or json")
	graphCmd.Flags().String("report", "", "Highlight the path of a stored report")
}
