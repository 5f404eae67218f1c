package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lempiji/similarity-d/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "similarity-d",
	Short: "Detect structurally similar functions in Go source trees",
	Long: `similarity-d detects structurally similar functions across Go source
trees by comparing normalized syntax trees with a tree edit distance
metric. Renaming variables or changing literal values never affects a
comparison; changing control flow or operators always does.`,
	Version: version.Short(),
}

func init() {
	rootCmd.AddCommand(NewScanCommand().CreateCobraCommand())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
