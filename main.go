package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	versync "github.com/versync/versync/pkg"
)

var (
	configPath string
	quiet      bool
	verbose    bool
)

var (
	okLabel   = color.New(color.FgGreen).SprintFunc()
	badLabel  = color.New(color.FgRed).SprintFunc()
	infoLabel = color.New(color.FgCyan).SprintFunc()
)

var rootCmd = &cobra.Command{
	Use:   "versync",
	Short: "Synchronizes version numbers and git tags from a single source of truth",
	Long: `versync keeps a single version string consistent across multiple project
metadata files (TOML, JSON, YAML) and synchronizes it with a git tag.

The source of truth is a version.toml manifest declaring the canonical
version and the target files with the dotted key path of their version
field. Edits are format preserving: comments, key order and whitespace in
target files are left untouched.

Exit codes: 0 on success, 1 when check finds a version mismatch, 2 on any
execution error.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitError carries a process exit code out of a command. Any user-facing
// message has already been printed by the time it is returned.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "version.toml", "path to the configuration file")
	pf.BoolVar(&quiet, "quiet", false, "suppress output")
	pf.BoolVar(&verbose, "verbose", false, "enable verbose output")
}

// loadConfig loads the version manifest, printing the failure and converting
// it to the execution-error exit code.
func loadConfig(cmd *cobra.Command) (*versync.Config, error) {
	cfg, err := versync.LoadConfig(afero.NewOsFs(), configPath)
	if err != nil {
		if !quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		}
		return nil, &exitError{code: versync.ExitError}
	}
	if verbose && !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Using config: %s\n", configPath)
		fmt.Fprintf(cmd.ErrOrStderr(), "Version: %s\n", cfg.Version)
		fmt.Fprintf(cmd.ErrOrStderr(), "Targets: %d\n", len(cfg.Targets))
	}
	return cfg, nil
}

// newLogger returns a development logger when --verbose is set, otherwise a
// nop logger.
func newLogger() *zap.Logger {
	if !verbose || quiet {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// Execute runs the CLI with the given arguments and returns the process
// exit code.
func Execute(args []string, out, errOut io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		fmt.Fprintln(errOut, "Error:", err)
		return versync.ExitError
	}
	return versync.ExitSuccess
}

func main() {
	os.Exit(Execute(os.Args[1:], os.Stdout, os.Stderr))
}
