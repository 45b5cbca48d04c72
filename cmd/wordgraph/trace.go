package main

import (
	"fmt"

	"github.com/aretw0/wordgraph/internal/cli"
	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Manage stored walk traces",
	Long:  `Show, list and remove the traces written by finished random walks.`,
}

// traceApp opens the configured trace store without loading a corpus.
func traceApp(cmd *cobra.Command) *cli.App {
	app, err := cli.Configure(options(cmd))
	if err != nil {
		fail(err)
	}
	return app
}

var traceShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Print a stored trace",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := traceApp(cmd)
		defer app.Close()

		sessionID := app.Config.Trace.Session
		if len(args) == 1 {
			sessionID = args[0]
		}

		trace, err := app.Store.Load(cmd.Context(), sessionID)
		if err != nil {
			fmt.Printf("Error loading trace '%s': %v\n", sessionID, err)
			exit(app)
		}
		fmt.Print(trace.Text())
	},
}

var traceLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored traces",
	Run: func(cmd *cobra.Command, args []string) {
		app := traceApp(cmd)
		defer app.Close()

		ids, err := app.Store.List(cmd.Context())
		if err != nil {
			fmt.Printf("Error listing traces: %v\n", err)
			exit(app)
		}

		if len(ids) == 0 {
			fmt.Println("No stored traces found.")
			return
		}

		fmt.Println("Stored Traces:")
		for _, id := range ids {
			fmt.Println("- " + id)
		}
	},
}

var traceRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more traces",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := traceApp(cmd)
		defer app.Close()
		hasError := false

		for _, sessionID := range args {
			if err := app.Store.Delete(cmd.Context(), sessionID); err != nil {
				fmt.Printf("Error removing '%s': %v\n", sessionID, err)
				hasError = true
			} else {
				fmt.Printf("Removed trace '%s'\n", sessionID)
			}
		}

		if hasError {
			exit(app)
		}
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.AddCommand(traceShowCmd)
	traceCmd.AddCommand(traceLsCmd)
	traceCmd.AddCommand(traceRmCmd)
}
