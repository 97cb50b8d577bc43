// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lwau/lwau/internal/config"
	"github.com/lwau/lwau/internal/issue"
)

// downloadToParams bundles the inputs of the download-to command.
type downloadToParams struct {
	stdout   io.Writer
	stderr   io.Writer
	settings *config.Settings
	path     string // settings file to write
	dir      string // new download directory
	verbose  bool
}

func newDownloadToCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "download-to <dir>",
		Short: "Set the default download location",
		Long: `Set the default download location for archives that need manual installation.

The directory is saved in PluginData/lwau.json under the game root and used
by every later "update" run unless --download-to overrides it.`,
		Example: `  lwau download-to ~/Downloads/ksp`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			stderr := cmd.ErrOrStderr()
			// Overrides for this run must not end up in the file.
			settings := opts.loadSettings(cmd, newLogger(stderr, opts.verbose), true)
			return runDownloadTo(downloadToParams{
				stdout:   cmd.OutOrStdout(),
				stderr:   stderr,
				settings: settings,
				path:     config.SettingsPath(opts.root),
				dir:      args[0],
				verbose:  opts.verbose,
			})
		},
	}
}

// runDownloadTo stores dir as the download directory. The rest of the
// settings, recipes included, are written back unchanged.
func runDownloadTo(p downloadToParams) error {
	p.settings.DownloadDir = p.dir
	if err := config.Save(p.settings, p.path); err != nil {
		reportError(p.stderr, err, issue.SettingsInvalidId, p.verbose)
		return &ExitError{Code: ExitFatal, Err: err}
	}

	fmt.Fprintf(p.stdout, "Archives will be downloaded to %s\n", CmdStyle.Render(p.dir))
	return nil
}
