// detectivequest is a console mystery: walk the mansion, collect clues, accuse a suspect.
//
// Usage:
//
//	detectivequest [--plain] [--debug]
//	detectivequest review [--limit N]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"detectivequest/internal/debug"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	plain bool
	debug bool
}

var rootCmd = &cobra.Command{
	Use:          "detectivequest",
	Short:        "Explore the mansion, collect clues and accuse a suspect",
	Long:         "Detective Quest walks you through a mansion room by room.\nEvery clue you find goes into your notebook; at the end you name a suspect\nand the evidence decides whether the accusation holds.",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runPlay,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	f := rootCmd.Flags()
	f.BoolVar(&rootFlags.plain, "plain", false, "Use the line-oriented console instead of the full-screen UI")
	f.BoolVar(&rootFlags.debug, "debug", false, "Write debug records to "+debug.LogFile)

	rootCmd.AddCommand(reviewCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
