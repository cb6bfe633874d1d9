package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	versync "github.com/versync/versync/pkg"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check if all version numbers match the source of truth",
	Long: `Check reads every target file and compares the value at its key path with
the canonical version. All targets are reported even when earlier ones fail.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := newLogger()
		defer func() { _ = log.Sync() }()

		results := versync.NewEngine(cfg, versync.WithLogger(log)).Check()
		if !quiet {
			printCheckResults(cmd.OutOrStdout(), results, cfg.Version)
		}
		if code := versync.CheckExitCode(results); code != versync.ExitSuccess {
			return &exitError{code: code}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func printCheckResults(w io.Writer, results []versync.CheckResult, expected string) {
	for _, r := range results {
		switch r.Status {
		case versync.CheckMatch:
			fmt.Fprintf(w, "%s %s %s\n", okLabel("OK"), r.Target.File, r.Target.Key)
		case versync.CheckMismatch:
			fmt.Fprintf(w, "%s %s %s: %s != %s\n", badLabel("MISMATCH"), r.Target.File, r.Target.Key, r.Found, expected)
		case versync.CheckMissing:
			fmt.Fprintf(w, "%s %s %s\n", badLabel("MISSING"), r.Target.File, r.Target.Key)
		case versync.CheckError:
			fmt.Fprintf(w, "%s %s %s: %v\n", badLabel("ERROR"), r.Target.File, r.Target.Key, r.Err)
		}
	}
}
