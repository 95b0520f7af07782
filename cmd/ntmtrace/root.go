package main

import (
	"fmt"
	"os"

	"github.com/aretw0/ntmtrace/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ntmtrace",
	Short: "ntmtrace simulates non-deterministic Turing machines",
	Long: `ntmtrace explores every branch of a non-deterministic Turing machine breadth-first,
bounded by a depth and a step limit, and reports whether each input was accepted,
rejected, or cut off, together with a trace of configurations.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Project directory (holds input/, output/ and ntmtrace.toml)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default <dir>/ntmtrace.toml)")
	rootCmd.PersistentFlags().String("store", "", "Report store: none, memory, file or redis (overrides config)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}

// newApp builds the wired application from the persistent flags.
func newApp(cmd *cobra.Command) *cli.App {
	dir, _ := cmd.Flags().GetString("dir")
	configPath, _ := cmd.Flags().GetString("config")
	store, _ := cmd.Flags().GetString("store")
	debug, _ := cmd.Flags().GetBool("debug")
	parallel := 0
	if f := cmd.Flags().Lookup("parallel"); f != nil {
		parallel, _ = cmd.Flags().GetInt("parallel")
	}

	app, err := cli.NewApp(cli.AppOptions{
		Dir:         dir,
		ConfigPath:  configPath,
		Store:       store,
		Parallelism: parallel,
		Debug:       debug,
	})
	if err != nil {
		fmt.Printf("Error initializing ntmtrace: %v\n", err)
		os.Exit(1)
	}
	return app
}
