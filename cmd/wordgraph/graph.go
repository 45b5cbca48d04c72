package main

import (
	"fmt"
	"os"

	"github.com/aretw0/wordgraph/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the word graph",
	Long: `Prints the word graph as Graphviz DOT, a Mermaid diagram or an adjacency listing.
With -o the output is written to a file inside the working directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		app := bootstrap(cmd)
		defer app.Close()

		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		content, err := graph.Render(app.Engine.Graph(), graph.Format(format), nil)
		if err != nil {
			failApp(app, err)
		}

		if output == "" {
			fmt.Print(content)
			return
		}

		cwd, err := os.Getwd()
		if err != nil {
			failApp(app, err)
		}
		path, err := graph.WriteFile(cwd, output, content)
		if err != nil {
			failApp(app, err)
		}
		fmt.Printf("Graph written to %s\n", path)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("format", string(graph.FormatDOT), "Output format: dot, mermaid or text")
	graphCmd.Flags().StringP("output", "o", "", "File to write (letters, digits, '_' and '.')")
}
