// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/lwau/lwau/internal/config"
	"github.com/lwau/lwau/internal/download"
	"github.com/lwau/lwau/internal/issue"
	"github.com/lwau/lwau/internal/locator"
	"github.com/lwau/lwau/internal/manifest"
	"github.com/lwau/lwau/internal/mod"
	"github.com/lwau/lwau/internal/version"
)

type (
	// archiveLocator finds the download for a mod's available version.
	archiveLocator interface {
		Locate(ctx context.Context, name string, remote *manifest.Manifest, available version.Version) (locator.Result, error)
	}

	// archiveDownloader saves an archive into a directory.
	archiveDownloader interface {
		Download(ctx context.Context, archiveURL, dir string) (string, error)
	}

	// updateParams bundles the dependencies for the update command, so
	// runUpdate can be tested against fakes and local test servers.
	updateParams struct {
		session
		target     string // manifest path or "all"
		settings   *config.Settings
		locator    archiveLocator
		downloader archiveDownloader
		progress   bool // show a spinner while downloading
	}
)

func newUpdateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update <version-file|all>",
		Short: "Download available updates",
		Long: `Check mods like "check" does, then try to download each available update.

Archives are looked up from the remote version file: GitHub releases first,
then the DOWNLOAD page when it is on SpaceDock or GitHub. When no archive can
be found the DOWNLOAD page is opened in a browser instead. Downloaded
archives still have to be installed by hand, so they count as needing
manual intervention. Mods listed as recipes in PluginData/lwau.json are
never downloaded.`,
		Example: `  # Download every available update
  lwau update all --download-to ~/Downloads/ksp

  # Print download pages instead of opening a browser
  lwau update all --no-browser`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			s, settings := opts.newSession(cmd)
			return runUpdate(cmd.Context(), updateParams{
				session:    s,
				target:     args[0],
				settings:   settings,
				locator:    opts.newLocator(s, settings),
				downloader: newDownloader(settings),
				progress:   isTerminal(s.stderr),
			})
		},
	}
}

// runUpdate checks every target and tries to download each available update.
// It returns an ExitError with ExitAttention when any mod needs manual
// intervention, and with ExitFatal when a single target cannot be checked.
func runUpdate(ctx context.Context, p updateParams) error {
	if p.target != allTarget {
		m, err := p.openTarget(ctx, p.target)
		if err != nil {
			return err
		}
		if m.CheckUpdate(p.stdout) && !p.update(ctx, m) {
			return &ExitError{Code: ExitAttention}
		}
		return nil
	}

	manual := 0
	err := p.forEachMod(ctx, func(m *mod.Mod) {
		if m.CheckUpdate(p.stdout) && !p.update(ctx, m) {
			manual++
		}
	})
	if err != nil {
		return p.fatal(err, 0)
	}

	if manual > 0 {
		fmt.Fprintln(p.stdout, WarningStyle.Render(
			fmt.Sprintf("%d mods need manual intervention.", manual)))
		return &ExitError{Code: ExitAttention}
	}
	return nil
}

// update locates and downloads the archive for a mod with an update. It
// reports whether the update is handled without the user, which is only
// the case for recipe manifests.
func (p updateParams) update(ctx context.Context, m *mod.Mod) bool {
	r, _ := m.Resolved()

	res, err := p.locator.Locate(ctx, m.Name(), r.Remote, r.Available())
	if err != nil {
		switch {
		case !errors.Is(err, locator.ErrNoArchive):
			p.logger.Error("locating download failed", "mod", m.Name(), "err", err)
		case p.verbose:
			reportError(p.stderr, err, issueFor(err), true)
		}
		p.logger.Debug("no archive", "mod", m.Name(), "opened", res.OpenedInBrowser)
		return false
	}

	if p.settings.IsRecipe(m.Path()) {
		p.logger.Debug("handled by recipe", "mod", m.Name(), "archive", res.ArchiveURL)
		return true
	}

	if p.settings.DownloadDir == "" {
		fmt.Fprintln(p.stdout, "No download location specified.")
		if p.verbose {
			reportError(p.stderr, errNoDownloadDir, issueFor(errNoDownloadDir), true)
		}
		return false
	}

	stop := p.startSpinner(fmt.Sprintf("Downloading %s", m.Name()))
	path, err := p.downloader.Download(ctx, res.ArchiveURL, p.settings.DownloadDir)
	stop()
	if err != nil {
		derr := describeDownloadError(m.Name(), res.ArchiveURL, p.settings.DownloadDir, err)
		if p.verbose {
			reportError(p.stderr, derr, issueFor(err), true)
		} else {
			p.logger.Error(formatErrorForDisplay(derr, false))
		}
		return false
	}

	p.logger.Debug("downloaded", "mod", m.Name(), "source", res.Source, "url", res.ArchiveURL)
	fmt.Fprintln(p.stdout, SuccessStyle.Render("Downloaded "+path))
	return false
}

// describeDownloadError attaches the archive URL and a next step to a failed
// download.
func describeDownloadError(name, archiveURL, dir string, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("download " + name).
		WithResource(archiveURL).
		Wrap(err)
	if errors.Is(err, download.ErrArchiveExists) {
		ctx.WithSuggestion("Install the archive already in " + dir + ", or remove it and retry")
	}
	return ctx.BuildError()
}

// startSpinner shows progress on stderr when it is a terminal. The returned
// function stops it.
func (p updateParams) startSpinner(msg string) (stop func()) {
	if !p.progress {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(p.stderr))
	s.Suffix = " " + msg
	s.Start()
	return s.Stop
}
