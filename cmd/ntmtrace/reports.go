package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/ntmtrace/pkg/ports"
	"github.com/spf13/cobra"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Manage stored reports",
}

var reportsListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List stored report IDs",
	Run: func(cmd *cobra.Command, args []string) {
		store, closeApp := requireStore(cmd)
		defer closeApp()

		ids, err := store.List(cmd.Context())
		if err != nil {
			fmt.Printf("Error listing reports: %v\n", err)
			os.Exit(1)
		}
		for _, id := range ids {
			fmt.Println(id)
		}
	},
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored report",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		asJSON, _ := cmd.Flags().GetBool("json")
		store, closeApp := requireStore(cmd)
		defer closeApp()

		report, err := store.Load(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error loading report: %v\n", err)
			os.Exit(1)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(report)
			return
		}
		fmt.Println(strings.Join(report.Lines, "\n"))
	},
}

var reportsRemoveCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"delete"},
	Short:   "Delete stored reports",
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, closeApp := requireStore(cmd)
		defer closeApp()

		for _, id := range args {
			if err := store.Delete(cmd.Context(), id); err != nil {
				fmt.Printf("Error deleting report %s: %v\n", id, err)
				os.Exit(1)
			}
		}
	},
}

func requireStore(cmd *cobra.Command) (ports.ReportStore, func()) {
	app := newApp(cmd)
	store, err := app.RequireStore()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	return store, func() { _ = app.Close() }
}

func init() {
	rootCmd.AddCommand(reportsCmd)
	reportsCmd.AddCommand(reportsListCmd, reportsShowCmd, reportsRemoveCmd)

	reportsShowCmd.Flags().Bool("json", false, "Print the report as JSON")
}
