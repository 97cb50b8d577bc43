// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions for the user. Issue is a catalogue of Markdown help texts, one
// per class of problem lwau can hit, rendered for the terminal with glamour.
package issue
