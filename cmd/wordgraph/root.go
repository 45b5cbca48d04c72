package main

import (
	"fmt"
	"os"

	"github.com/aretw0/wordgraph/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wordgraph",
	Short: "wordgraph builds a word-adjacency graph from a text and explores it",
	Long: `wordgraph reads a corpus (a plain text file or a document in a Markdown vault),
builds a directed graph of adjacent words and answers bridge-word, text-generation,
shortest-path and random-walk queries against it.`,
	SilenceUsage: true,
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
	rootCmd.PersistentFlags().String("corpus", "", "Text file to build the graph from")
	rootCmd.PersistentFlags().String("vault", "", "Markdown vault containing the corpus document")
	rootCmd.PersistentFlags().String("doc", "", "Document ID inside --vault")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./wordgraph.yaml when present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// options collects the persistent flags.
func options(cmd *cobra.Command) cli.Options {
	flags := cmd.Flags()
	opts := cli.Options{}
	opts.Corpus, _ = flags.GetString("corpus")
	opts.Vault, _ = flags.GetString("vault")
	opts.Doc, _ = flags.GetString("doc")
	opts.ConfigPath, _ = flags.GetString("config")
	opts.Debug, _ = flags.GetBool("debug")

	if f := flags.Lookup("seed"); f != nil && f.Changed {
		opts.Seed, _ = flags.GetInt64("seed")
		opts.SeedSet = true
	}
	if f := flags.Lookup("session"); f != nil {
		opts.Session, _ = flags.GetString("session")
	}
	return opts
}

// bootstrap builds the app or exits with the error.
func bootstrap(cmd *cobra.Command) *cli.App {
	app, err := cli.Bootstrap(cmd.Context(), options(cmd))
	if err != nil {
		fail(err)
	}
	return app
}

// osExit is replaced in tests.
var osExit = os.Exit

func fail(err error) {
	fmt.Printf("Error: %v\n", err)
	osExit(1)
}

// exit closes app and ends the process with status 1. Deferred calls do not
// run after os.Exit, so commands holding an App leave through here.
func exit(app *cli.App) {
	if err := app.Close(); err != nil {
		app.Logger.Warn("Failed to close resources", "err", err)
	}
	osExit(1)
}

// failApp prints err, then closes app and exits.
func failApp(app *cli.App, err error) {
	fmt.Printf("Error: %v\n", err)
	exit(app)
}
