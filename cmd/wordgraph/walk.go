package main

import (
	"os"

	"github.com/aretw0/wordgraph/internal/adapters/file"
	"github.com/aretw0/wordgraph/internal/cli"
	"github.com/aretw0/wordgraph/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var walkCmd = &cobra.Command{
	Use:   "walk",
	Short: "Random walk over the graph until a dead end or a repeated edge",
	Long: `Starts a random walk at a random word. Press Enter to take the next step or q to stop.
With --auto the walk runs to the end. The finished walk is written to the trace store
(random_walk.txt in the working directory by default).`,
	Run: func(cmd *cobra.Command, args []string) {
		app := bootstrap(cmd)
		defer app.Close()

		auto, _ := cmd.Flags().GetBool("auto")
		if !auto && tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout)
		}

		tracePath := ""
		if fs, ok := app.Store.(*file.Store); ok {
			tracePath = fs.Path(app.Engine.SessionID())
		}

		_, err := cli.RunWalk(cmd.Context(), app.Engine, cli.WalkOptions{
			In:        os.Stdin,
			Out:       os.Stdout,
			Auto:      auto,
			TracePath: tracePath,
		})
		if err != nil {
			failApp(app, err)
		}
	},
}

func init() {
	rootCmd.AddCommand(walkCmd)

	walkCmd.Flags().Bool("auto", false, "Walk to the end without waiting for input")
	walkCmd.Flags().Int64("seed", 0, "Seed for the walk (0 = time-based)")
	walkCmd.Flags().String("session", "", "Walk session, names the stored trace")
}
