package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/ntmtrace/pkg/domain"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [input...]",
	Short: "Simulate input strings given on the command line",
	Long: `Runs each argument through the machine (default: the configured machine file)
and prints the reports. An argument of "" simulates the empty string.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		machinePath, _ := cmd.Flags().GetString("machine")
		maxDepth, _ := cmd.Flags().GetInt("max-depth")
		maxSteps, _ := cmd.Flags().GetInt("max-steps")
		trace, _ := cmd.Flags().GetBool("trace")

		app := newApp(cmd)
		defer app.Close()

		m, err := app.LoadMachine(machinePath)
		if err != nil {
			fmt.Printf("Error loading machine: %v\n", err)
			os.Exit(1)
		}

		reports, err := app.Engine.RunBatch(cmd.Context(), m, domain.RunParameters{
			InputStrings: args,
			MaxDepth:     domain.LimitOf(maxDepth),
			MaxSteps:     domain.LimitOf(maxSteps),
			Debug:        trace,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		for i, r := range reports {
			if i > 0 {
				fmt.Println()
			}
			fmt.Println(strings.Join(r.Lines, "\n"))
			if app.Store != nil {
				fmt.Printf("(report %s)\n", r.ID)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringP("machine", "m", "", "Machine description (.csv, .yaml or .json)")
	simulateCmd.Flags().Int("max-depth", 0, "Maximum levels to explore (0 = unbounded)")
	simulateCmd.Flags().Int("max-steps", 0, "Maximum frontier size (0 = unbounded)")
	simulateCmd.Flags().Bool("trace", false, "Include debug lines in the reports")
}
