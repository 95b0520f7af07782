package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/ntmtrace/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate every input of the batch parameter file",
	Long: `Reads input/input.txt and input/NTM.csv (paths configurable in ntmtrace.toml),
simulates every input string, writes output/output.txt and echoes it to stdout.`,
	Run: func(cmd *cobra.Command, args []string) {
		rich, _ := cmd.Flags().GetBool("rich")
		quiet, _ := cmd.Flags().GetBool("quiet")

		app := newApp(cmd)
		defer app.Close()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		_, err := cli.RunBatch(ctx, app, cli.RunOptions{
			Output: os.Stdout,
			Rich:   rich,
			Quiet:  quiet,
		})
		if err != nil {
			if sig := ctx.Signal(); sig != nil && errors.Is(err, ctx.Err()) {
				cli.PrintSystemMessage("Interrupted by %v", sig)
				os.Exit(130)
			}
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("rich", false, "Render reports as styled Markdown when stdout is a terminal")
	runCmd.Flags().BoolP("quiet", "q", false, "Only write the output file")
	runCmd.Flags().Int("parallel", 0, "Inputs simulated at once (overrides batch.parallelism)")

	// 'run' is the default when no command is given.
	rootCmd.Run = runCmd.Run
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
