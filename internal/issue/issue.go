// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
)

type Id int

const (
	ManifestNotFoundId Id = iota + 1
	ManifestInvalidId
	RemoteUnreachableId
	NoArchiveFoundId
	DownloadDirNotSetId
	ArchiveExistsId
	SettingsInvalidId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation links
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render returns the issue as terminal-formatted Markdown. stylePath is a
// glamour style name such as "dark" or "notty".
func (i *Issue) Render(stylePath string) (string, error) {
	return renderWith(i, render, stylePath)
}

func renderWith(i *Issue, r func(in, stylePath string) (string, error), stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("\n- <" + string(link) + ">")
		}
		for _, link := range i.extLinks {
			md.WriteString("\n- <" + string(link) + ">")
		}
	}
	return r(md.String(), stylePath)
}

var (
	render = glamour.Render

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# Version file not found

lwau could not read the ` + "`.version`" + ` file you asked it to check.

## Things you can try
- Check the path. It is relative to the current directory, not to ` + "`--root`" + `.
- Check every installed mod at once:
~~~
$ lwau check all
~~~`,
	}

	manifestInvalidIssue = &Issue{
		id: ManifestInvalidId,
		mdMsg: `
# Invalid version file

The version file is not valid AVC JSON, or is missing a required field.
A local version file needs ` + "`NAME`" + `, ` + "`URL`" + ` and ` + "`VERSION`" + `.
The remote one pointed to by ` + "`URL`" + ` needs at least ` + "`VERSION`" + `.

## Things you can try
- Reinstall the mod, the file may have been damaged.
- Report the problem to the mod author.`,
	}

	remoteUnreachableIssue = &Issue{
		id: RemoteUnreachableId,
		mdMsg: `
# Could not reach the remote version file

The ` + "`URL`" + ` of the installed version file did not answer with a version file.

## Things you can try
- Check your internet connection.
- Open the URL in a browser. The mod may have moved hosts.
- If GitHub reports a rate limit, wait an hour and try again.`,
	}

	noArchiveFoundIssue = &Issue{
		id: NoArchiveFoundId,
		mdMsg: `
# No download found

lwau knows the update exists but could not find an archive to download.
It only understands GitHub releases and SpaceDock pages.

## Things you can try
- Download the update by hand from the mod's ` + "`DOWNLOAD`" + ` page.
- Use ` + "`lwau check`" + ` to only report updates.`,
		extLinks: []HttpLink{"https://spacedock.info"},
	}

	downloadDirNotSetIssue = &Issue{
		id: DownloadDirNotSetId,
		mdMsg: `
# No download location specified

lwau needs a directory to save update archives in.

## Things you can try
- Set it once for this game install:
~~~
$ lwau download-to ~/Downloads/ksp
~~~
- Or pass it for a single run with ` + "`--download-to`" + `.`,
	}

	archiveExistsIssue = &Issue{
		id: ArchiveExistsId,
		mdMsg: `
# Archive already downloaded

An archive with the same name is already in the download directory.
lwau never overwrites files.

## Things you can try
- Install the archive that is already there.
- Delete or move it and run the update again.`,
	}

	settingsInvalidIssue = &Issue{
		id: SettingsInvalidId,
		mdMsg: `
# Settings could not be used

` + "`PluginData/lwau.json`" + ` could not be read or written.

## Things you can try
- Run lwau from the game root, or pass ` + "`--root`" + `.
- Rewrite the file:
~~~
$ lwau download-to <dir>
~~~`,
	}

	issues = map[Id]*Issue{
		manifestNotFoundIssue.Id():  manifestNotFoundIssue,
		manifestInvalidIssue.Id():   manifestInvalidIssue,
		remoteUnreachableIssue.Id(): remoteUnreachableIssue,
		noArchiveFoundIssue.Id():    noArchiveFoundIssue,
		downloadDirNotSetIssue.Id(): downloadDirNotSetIssue,
		archiveExistsIssue.Id():     archiveExistsIssue,
		settingsInvalidIssue.Id():   settingsInvalidIssue,
	}
)

// Values returns every registered issue ordered by Id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return int(a.id) - int(b.id)
	})
}

func Get(id Id) *Issue {
	return issues[id]
}
