package main

import (
	"fmt"

	"github.com/spf13/cobra"

	versync "github.com/versync/versync/pkg"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Create a git tag for the current version",
	Long: `Tag creates an annotated git tag named tag_prefix + version at the current
commit. It refuses to tag when any target is out of sync, when the working
tree or index is dirty, or when the tag already exists.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := newLogger()
		defer func() { _ = log.Sync() }()

		engine := versync.NewEngine(cfg, versync.WithLogger(log))
		name, err := engine.Tag(&versync.Git{})
		if err != nil {
			if !quiet {
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
			}
			return &exitError{code: versync.ExitError}
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okLabel("CREATED TAG"), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tagCmd)
}
