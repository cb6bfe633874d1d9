package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	versync "github.com/versync/versync/pkg"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply the version from the source of truth to all target files",
	Long: `Apply rewrites the value at each target's key path to the canonical
version. Targets already holding it are left untouched, so re-running apply
is a no-op once everything is in sync. Writes are atomic: a target is either
fully rewritten or left exactly as it was.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := newLogger()
		defer func() { _ = log.Sync() }()

		results := versync.NewEngine(cfg, versync.WithLogger(log)).Apply()
		if !quiet {
			printApplyResults(cmd.OutOrStdout(), results, cfg.Version)
		}
		if code := versync.ApplyExitCode(results); code != versync.ExitSuccess {
			return &exitError{code: code}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func printApplyResults(w io.Writer, results []versync.ApplyResult, version string) {
	for _, r := range results {
		switch r.Status {
		case versync.ApplyWritten:
			fmt.Fprintf(w, "%s %s %s: %s -> %s\n", okLabel("UPDATED"), r.Target.File, r.Target.Key, r.Old, version)
		case versync.ApplyUnchanged:
			fmt.Fprintf(w, "%s %s\n", infoLabel("NO CHANGE"), r.Target.File)
		case versync.ApplyError:
			fmt.Fprintf(w, "%s %s %s: %v\n", badLabel("ERROR"), r.Target.File, r.Target.Key, r.Err)
		}
	}
}
