// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lwau/lwau/internal/mod"
)

// checkParams bundles the dependencies for the check command, so runCheck
// can be tested without a real Cobra command or live manifest URLs.
type checkParams struct {
	session
	target string // manifest path or "all"
}

func newCheckCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <version-file|all>",
		Short: "List mods with updates available without downloading anything",
		Long: `List mods with updates available without downloading anything.

The target is a single .version file, or "all" to check every .version
file under GameData. A single target that cannot be read or fetched is an
error (exit status 2). With "all", such mods are listed as "Error" and the
rest are still checked.`,
		Example: `  # Check every installed mod
  lwau check all

  # Check one mod
  lwau check GameData/MechJeb2/MechJeb2.version`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			s, _ := opts.newSession(cmd)
			return runCheck(cmd.Context(), checkParams{session: s, target: args[0]})
		},
	}
}

// runCheck prints one status line per mod. It returns an ExitError with
// ExitAttention when any update is available, and with ExitFatal when a
// single target cannot be checked.
func runCheck(ctx context.Context, p checkParams) error {
	if p.target != allTarget {
		m, err := p.openTarget(ctx, p.target)
		if err != nil {
			return err
		}
		if m.CheckUpdate(p.stdout) {
			return &ExitError{Code: ExitAttention}
		}
		return nil
	}

	updates := 0
	err := p.forEachMod(ctx, func(m *mod.Mod) {
		if m.CheckUpdate(p.stdout) {
			updates++
		}
	})
	if err != nil {
		return p.fatal(err, 0)
	}

	fmt.Fprintln(p.stdout, summaryStyle(updates).Render(
		fmt.Sprintf("%d packages have updates available.", updates)))
	if updates > 0 {
		return &ExitError{Code: ExitAttention}
	}
	return nil
}
