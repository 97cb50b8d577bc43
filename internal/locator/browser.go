// SPDX-License-Identifier: MPL-2.0

package locator

import (
	"github.com/pkg/browser"
)

type (
	// Opener shows a download page to the user.
	Opener interface {
		Open(pageURL string) error
	}

	// OpenerFunc adapts a function to the Opener interface.
	OpenerFunc func(pageURL string) error

	// BrowserOpener opens pages in the system default browser.
	BrowserOpener struct{}
)

// Open calls f(pageURL).
func (f OpenerFunc) Open(pageURL string) error { return f(pageURL) }

// Open launches the default browser on pageURL.
func (BrowserOpener) Open(pageURL string) error {
	return browser.OpenURL(pageURL)
}
