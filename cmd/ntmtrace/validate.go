package main

import (
	"fmt"
	"os"

	"github.com/aretw0/ntmtrace/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [machine]",
	Short: "Check a machine description for consistency",
	Long: `Reports undeclared start/accept/reject states, transitions to unknown states,
symbols outside the tape alphabet and directions other than L or R.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}

		app := newApp(cmd)
		defer app.Close()

		m, err := app.LoadMachine(path)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		if err := validator.ValidateMachine(m); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Machine is valid! ✅")
		fmt.Println(validator.Summary(m))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
