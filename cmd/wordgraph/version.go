package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/wordgraph"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of wordgraph",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wordgraph version %s\n", strings.TrimSpace(wordgraph.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
