package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lempiji/similarity-d/internal/config"
)

// NewInitCmd creates the init command, which writes a default
// .similarity.toml into the current directory.
func NewInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default .similarity.toml configuration file",
		Long: `Create a default .similarity.toml in the current directory.

The generated file documents every setting with its default value; edit
it and re-run scans to pick the changes up automatically.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigFileName
			if force {
				_ = removeIfExists(path)
			}
			if err := config.SaveDefaultConfig(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	return cmd
}

func removeIfExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return os.Remove(path)
}
