package main

import (
	"os"

	"github.com/aretw0/wordgraph/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var pathCmd = &cobra.Command{
	Use:   "path <word1> [word2]",
	Short: "Print every shortest path between two words, or from one word to all others",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		app := bootstrap(cmd)
		defer app.Close()
		printer := tui.NewPrinter(os.Stdout)

		if len(args) == 1 {
			sets := app.Engine.ShortestPathsFrom(cmd.Context(), args[0])
			if err := printer.Markdown(tui.PathsFromMarkdown(args[0], app.Engine.Words(), sets)); err != nil {
				failApp(app, err)
			}
			return
		}

		set, err := app.Engine.ShortestPaths(cmd.Context(), args[0], args[1])
		if err != nil {
			failApp(app, err)
		}
		if err := printer.Markdown(tui.PathsMarkdown(set)); err != nil {
			failApp(app, err)
		}
	},
}

func init() {
	rootCmd.AddCommand(pathCmd)
}
