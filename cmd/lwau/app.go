// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lwau/lwau/internal/config"
	"github.com/lwau/lwau/internal/download"
	"github.com/lwau/lwau/internal/issue"
	"github.com/lwau/lwau/internal/locator"
	"github.com/lwau/lwau/internal/manifest"
	"github.com/lwau/lwau/internal/mod"
	"github.com/lwau/lwau/internal/scan"
)

// allTarget selects every manifest under <root>/GameData.
const allTarget = "all"

// errNoDownloadDir marks an update that had an archive but nowhere to put it.
var errNoDownloadDir = errors.New("no download location specified")

// session bundles what check and update share. Per-mod status lines and
// summaries go to stdout; diagnostics go through logger to stderr.
type session struct {
	stdout  io.Writer
	stderr  io.Writer
	logger  *log.Logger
	fetcher mod.RemoteFetcher
	root    string
	verbose bool
}

// newLogger creates the stderr logger, at debug level when verbose.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}

// loadSettings reads the settings for the command's --root. Unusable
// settings files are reported and replaced by defaults. fileOnly skips the
// environment and --download-to overrides.
func (o *rootOptions) loadSettings(cmd *cobra.Command, logger *log.Logger, fileOnly bool) *config.Settings {
	settings, err := o.settings.Load(cmd.Context(), config.LoadOptions{
		Root:     o.root,
		Flags:    cmd.Flags(),
		FileOnly: fileOnly,
	})
	if err != nil {
		logger.Warn(formatErrorForDisplay(err, o.verbose))
	}
	return settings
}

// newSession wires the shared collaborators for a command invocation.
func (o *rootOptions) newSession(cmd *cobra.Command) (session, *config.Settings) {
	stderr := cmd.ErrOrStderr()
	logger := newLogger(stderr, o.verbose)
	settings := o.loadSettings(cmd, logger, false)

	client := httpClient(settings)
	fetcher := manifest.NewFetcher(
		manifest.WithHTTPClient(client),
		manifest.WithUserAgent(userAgent()),
	)

	return session{
		stdout:  cmd.OutOrStdout(),
		stderr:  stderr,
		logger:  logger,
		fetcher: fetcher,
		root:    o.root,
		verbose: o.verbose,
	}, settings
}

// newLocator builds a Locator against the public hosting APIs.
func (o *rootOptions) newLocator(s session, settings *config.Settings) *locator.Locator {
	client := httpClient(settings)

	ghOpts := []locator.GitHubOption{
		locator.WithGitHubHTTPClient(client),
		locator.WithGitHubUserAgent(userAgent()),
	}
	// A token raises the GitHub limit from 60 to 5000 requests per hour.
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		ghOpts = append(ghOpts, locator.WithGitHubToken(token))
	}

	var opener locator.Opener = locator.BrowserOpener{}
	if o.noBrowser {
		opener = locator.OpenerFunc(func(page string) error {
			fmt.Fprintf(s.stdout, "Download manually from %s\n", CmdStyle.Render(page))
			return nil
		})
	}

	return locator.New(
		locator.WithGitHubClient(locator.NewGitHubClient(ghOpts...)),
		locator.WithSpacedockClient(locator.NewSpacedockClient(
			locator.WithSpacedockHTTPClient(client),
			locator.WithSpacedockUserAgent(userAgent()),
		)),
		locator.WithOpener(opener),
		locator.WithLogger(s.logger),
	)
}

func newDownloader(settings *config.Settings) *download.Downloader {
	return download.New(
		download.WithHTTPClient(httpClient(settings)),
		download.WithUserAgent(userAgent()),
	)
}

func httpClient(settings *config.Settings) *http.Client {
	return &http.Client{Timeout: settings.HTTPTimeout}
}

func userAgent() string {
	return config.AppName + "/" + Version
}

// forEachMod opens every manifest under <root>/GameData in traversal order.
// Mods that fail to load are still passed to fn, carrying their error.
func (s session) forEachMod(ctx context.Context, fn func(*mod.Mod)) error {
	dir := filepath.Join(s.root, config.GameDataDir)
	for path, err := range scan.FindManifests(dir) {
		if err != nil {
			return issue.NewErrorContext().
				WithOperation("scan installed mods").
				WithResource(dir).
				WithSuggestion("Run lwau from the game root, or pass --root").
				Wrap(err).
				BuildError()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		m := mod.Open(ctx, path, s.fetcher)
		if err := m.Err(); err != nil {
			s.logger.Debug("check failed", "path", path, "err", err)
		}
		fn(m)
	}
	return nil
}

// openTarget opens a single named manifest. A captured error is fatal here:
// it is reported and returned as an ExitError with ExitFatal.
func (s session) openTarget(ctx context.Context, path string) (*mod.Mod, error) {
	m := mod.Open(ctx, path, s.fetcher)
	if err := m.Err(); err != nil {
		return nil, s.fatal(describeModError(path, err), issueFor(err))
	}
	return m, nil
}

// fatal reports err on stderr and wraps it with ExitFatal. In verbose mode
// the help text for id is rendered below the error.
func (s session) fatal(err error, id issue.Id) error {
	reportError(s.stderr, err, id, s.verbose)
	return &ExitError{Code: ExitFatal, Err: err}
}

// reportError prints err, plus the help text for id when verbose.
func reportError(w io.Writer, err error, id issue.Id, verbose bool) {
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
	if !verbose {
		return
	}
	help := issue.Get(id)
	if help == nil {
		return
	}
	rendered, renderErr := help.Render(glamourStyle(w))
	if renderErr != nil {
		return
	}
	fmt.Fprint(w, rendered)
}

// describeModError adds the failing step and a suggestion to a mod error.
func describeModError(path string, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("check mod").
		WithResource(path).
		Wrap(err)

	switch {
	case errors.Is(err, manifest.ErrLoad):
		ctx.WithSuggestion("Check that the path names an existing .version file")
	case errors.Is(err, manifest.ErrParse):
		ctx.WithSuggestion("Check that the version file is valid JSON with NAME, URL and VERSION")
	case errors.Is(err, manifest.ErrNetwork):
		var rl *locator.RateLimitError
		if errors.As(err, &rl) {
			ctx.WithSuggestion("Set GITHUB_TOKEN to raise the GitHub rate limit")
		}
		ctx.WithSuggestion("Check your internet connection and the URL in the version file")
	}
	return ctx.BuildError()
}

// issueFor picks the help text that matches err, or 0 for none.
func issueFor(err error) issue.Id {
	switch {
	case errors.Is(err, manifest.ErrLoad):
		return issue.ManifestNotFoundId
	case errors.Is(err, manifest.ErrParse):
		return issue.ManifestInvalidId
	case errors.Is(err, manifest.ErrNetwork):
		return issue.RemoteUnreachableId
	case errors.Is(err, locator.ErrNoArchive):
		return issue.NoArchiveFoundId
	case errors.Is(err, download.ErrArchiveExists):
		return issue.ArchiveExistsId
	case errors.Is(err, errNoDownloadDir):
		return issue.DownloadDirNotSetId
	default:
		return 0
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// glamourStyle picks a glamour style that suits w.
func glamourStyle(w io.Writer) string {
	if isTerminal(w) {
		return "dark"
	}
	return "notty"
}
