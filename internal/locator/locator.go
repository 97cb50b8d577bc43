// SPDX-License-Identifier: MPL-2.0

package locator

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/lwau/lwau/internal/manifest"
	"github.com/lwau/lwau/internal/version"
)

const (
	// SourceNone means no archive URL was found.
	SourceNone Source = iota
	// SourceGitHub means the archive is a GitHub release asset.
	SourceGitHub
	// SourceSpacedock means the archive is a Spacedock version download.
	SourceSpacedock
)

// archiveSuffix is the only asset type we download.
const archiveSuffix = ".zip"

type (
	// Source identifies which hosting convention produced an archive URL.
	Source int

	// Result is the outcome of Locate.
	Result struct {
		// ArchiveURL is the direct download URL, empty when none was found.
		ArchiveURL string
		Source     Source
		// OpenedInBrowser is set when the DOWNLOAD page was handed to the
		// Opener as a fallback.
		OpenedInBrowser bool
	}

	// Locator resolves archive URLs from remote manifest metadata.
	Locator struct {
		github    *GitHubClient
		spacedock *SpacedockClient
		opener    Opener
		logger    *log.Logger
	}

	// Option configures a Locator during construction.
	Option func(*Locator)
)

// String returns a human-readable source name.
func (s Source) String() string {
	switch s {
	case SourceGitHub:
		return "github"
	case SourceSpacedock:
		return "spacedock"
	default:
		return "none"
	}
}

// WithGitHubClient overrides the GitHub releases client.
func WithGitHubClient(c *GitHubClient) Option {
	return func(l *Locator) {
		l.github = c
	}
}

// WithSpacedockClient overrides the Spacedock client.
func WithSpacedockClient(c *SpacedockClient) Option {
	return func(l *Locator) {
		l.spacedock = c
	}
}

// WithOpener overrides how download pages are shown to the user.
func WithOpener(o Opener) Option {
	return func(l *Locator) {
		l.opener = o
	}
}

// WithLogger sets the logger that receives resolution diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(l *Locator) {
		l.logger = logger
	}
}

// New creates a Locator. Defaults talk to the public GitHub and Spacedock
// APIs, open pages in the default browser and discard diagnostics.
func New(opts ...Option) *Locator {
	l := &Locator{}
	for _, opt := range opts {
		opt(l)
	}
	if l.github == nil {
		l.github = NewGitHubClient()
	}
	if l.spacedock == nil {
		l.spacedock = NewSpacedockClient()
	}
	if l.opener == nil {
		l.opener = BrowserOpener{}
	}
	if l.logger == nil {
		l.logger = log.New(io.Discard)
	}
	return l
}

// Locate finds the archive for version available of the mod described by
// remote. name is used in diagnostics.
//
// When no archive is found the returned error is a *ResolutionError and
// Result may still report OpenedInBrowser. Network and decode failures from
// the hosting APIs are returned as *manifest.NetworkError or
// *manifest.ParseError.
func (l *Locator) Locate(ctx context.Context, name string, remote *manifest.Manifest, available version.Version) (Result, error) {
	if gh := remote.GitHub; gh != nil {
		archive, err := l.fromGitHub(ctx, gh.Username, gh.Repository, available)
		if err != nil {
			return Result{}, err
		}
		if archive != "" {
			return Result{ArchiveURL: archive, Source: SourceGitHub}, nil
		}
	}

	page := remote.Download
	if page == "" {
		l.logger.Warnf("%s did not specify a download page.", name)
		return Result{}, &ResolutionError{Name: name}
	}

	host := ""
	if u, err := url.Parse(page); err == nil {
		host = strings.ToLower(u.Hostname())
	}

	switch {
	case strings.Contains(host, "spacedock"):
		archive, err := l.fromSpacedock(ctx, page, available)
		if err != nil {
			return Result{}, err
		}
		if archive != "" {
			return Result{ArchiveURL: archive, Source: SourceSpacedock}, nil
		}
	case strings.Contains(host, "github") && remote.GitHub == nil:
		if owner, repo, ok := gitHubRepoFromPage(page); ok {
			archive, err := l.fromGitHub(ctx, owner, repo, available)
			if err != nil {
				return Result{}, err
			}
			if archive != "" {
				return Result{ArchiveURL: archive, Source: SourceGitHub}, nil
			}
		}
	}

	l.logger.Warnf("Could not find an archive for %s", page)
	res := Result{}
	if err := l.opener.Open(page); err != nil {
		l.logger.Error("opening download page", "url", page, "err", err)
	} else {
		res.OpenedInBrowser = true
	}
	return res, &ResolutionError{Name: name, Page: page}
}

// fromGitHub picks the first release whose tag contains the version string
// and, within it, the first .zip asset. It returns "" when either is missing.
func (l *Locator) fromGitHub(ctx context.Context, owner, repo string, available version.Version) (string, error) {
	releases, err := l.github.ListReleases(ctx, owner, repo)
	if err != nil {
		return "", err
	}

	want := available.String()
	release, ok := lo.Find(releases, func(r Release) bool {
		return strings.Contains(r.TagName, want)
	})
	if !ok {
		l.logger.Warnf("GitHub: No tag matching %q", want)
		return "", nil
	}

	asset, ok := lo.Find(release.Assets, func(a Asset) bool {
		return strings.HasSuffix(a.Name, archiveSuffix)
	})
	if !ok {
		l.logger.Warnf("GitHub: No %s archive for release %q", archiveSuffix, release.TagName)
		return "", nil
	}

	l.logger.Debug("found GitHub asset", "repo", owner+"/"+repo, "tag", release.TagName, "asset", asset.Name)
	return asset.BrowserDownloadURL, nil
}

// fromSpacedock picks the Spacedock version whose friendly_version
// fuzzy-equals available. It returns "" when none does.
func (l *Locator) fromSpacedock(ctx context.Context, page string, available version.Version) (string, error) {
	id, err := SpacedockModID(page)
	if err != nil {
		l.logger.Warn("Spacedock: cannot determine mod id", "err", err)
		return "", nil
	}

	mod, err := l.spacedock.GetMod(ctx, id)
	if err != nil {
		return "", err
	}

	match, ok := lo.Find(mod.Versions, func(v SpacedockVersion) bool {
		parsed, err := version.FromString(v.FriendlyVersion)
		if err != nil {
			l.logger.Debug("skipping unparsable Spacedock version", "friendly_version", v.FriendlyVersion)
			return false
		}
		return available.FuzzyEqual(parsed)
	})
	if !ok {
		l.logger.Warnf("No Spacedock download for version %q", available.String())
		return "", nil
	}

	return l.spacedock.DownloadURL(match), nil
}

// gitHubRepoFromPage reads owner and repository from the first two path
// segments of a github.com page URL.
func gitHubRepoFromPage(page string) (owner, repo string, ok bool) {
	u, err := url.Parse(page)
	if err != nil {
		return "", "", false
	}
	segments := pathSegments(u.Path)
	if len(segments) < 2 {
		return "", "", false
	}
	return segments[0], segments[1], true
}
