package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/wordgraph/internal/presentation/tui"
	"github.com/aretw0/wordgraph/pkg/domain"
	"github.com/spf13/cobra"
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge <word1> <word2>",
	Short: "List the bridge words between two words",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		app := bootstrap(cmd)
		defer app.Close()

		res, err := app.Engine.BridgeWords(cmd.Context(), args[0], args[1])
		if errors.Is(err, domain.ErrNodeNotFound) {
			fmt.Printf("No %s or %s in the graph!\n", args[0], args[1])
			exit(app)
		}
		if err != nil {
			failApp(app, err)
		}
		fmt.Println(tui.BridgeMessage(res))
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate <text>...",
	Short: "Insert bridge words between adjacent words of a text",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := bootstrap(cmd)
		defer app.Close()

		text := args[0]
		for _, a := range args[1:] {
			text += " " + a
		}
		fmt.Println(app.Engine.GenerateText(cmd.Context(), text))
	},
}

func init() {
	rootCmd.AddCommand(bridgeCmd)
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().Int64("seed", 0, "Seed for bridge selection (0 = time-based)")
}
