// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/lwau/lwau/internal/config"
	"github.com/lwau/lwau/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootOptions holds the global flags. Each command reads them once, when it
// runs, and passes what it needs down explicitly.
type rootOptions struct {
	downloadTo string
	root       string
	verbose    bool
	noBrowser  bool
	settings   config.Provider
}

// newRootCommand builds the lwau command tree.
func newRootCommand() *cobra.Command {
	opts := &rootOptions{settings: config.NewProvider()}

	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Check installed KSP mods for updates and download them",
		Long: TitleStyle.Render("lwau") + SubtitleStyle.Render(" - Lightweight AVC updater") + `

lwau reads the AVC ` + CmdStyle.Render(".version") + ` files that mods install under
GameData, fetches the remote version file each one points to, and reports
which mods have a newer release. The update command also finds the release
archive on GitHub or SpaceDock and downloads it.

` + SubtitleStyle.Render("Exit status:") + `
  0  All checked mods are up to date.
  1  One or more updates are available but not installed.
  2  An error occurred.

` + SubtitleStyle.Render("Examples:") + `
  lwau check all                              Check every installed mod
  lwau check GameData/MechJeb2/MechJeb2.version
  lwau update all -d ~/Downloads              Download every available update
  lwau download-to ~/Downloads/ksp            Remember the download directory`,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.downloadTo, config.DownloadToFlag, "d", "", "download archives here, overriding the saved location")
	pf.StringVar(&opts.root, "root", ".", "game root containing GameData and PluginData")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVar(&opts.noBrowser, "no-browser", false, "print download pages instead of opening a browser")

	rootCmd.AddCommand(newCheckCommand(opts))
	rootCmd.AddCommand(newUpdateCommand(opts))
	rootCmd.AddCommand(newDownloadToCommand(opts))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command and exits with the status it reports.
// This is called by main.main().
func Execute() {
	rootCmd := newRootCommand()
	status := captureExitStatus(rootCmd)

	err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
			printError(w, err, verbose)
		}),
	)
	if err != nil {
		os.Exit(exitCode(err))
	}
	os.Exit(*status)
}

// captureExitStatus rewires every RunE in the tree so that an ExitError is
// recorded instead of returned. fang prints every error it sees, and an
// ExitError has already been reported by the command.
func captureExitStatus(root *cobra.Command) *int {
	status := new(int)
	var walk func(*cobra.Command)
	walk = func(c *cobra.Command) {
		if run := c.RunE; run != nil {
			c.RunE = func(cmd *cobra.Command, args []string) error {
				err := run(cmd, args)
				var exitErr *ExitError
				if errors.As(err, &exitErr) {
					*status = exitErr.Code
					return nil
				}
				return err
			}
		}
		for _, child := range c.Commands() {
			walk(child)
		}
	}
	walk(root)
	return status
}

// printError shows errors that reach fang, mostly Cobra usage errors.
// ExitErrors have already been reported by the command that returned them.
func printError(w io.Writer, err error, verbose bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
