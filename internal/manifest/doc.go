// SPDX-License-Identifier: MPL-2.0

// Package manifest reads AVC .version manifests from disk and from the
// network.
//
// A manifest is a JSON object, optionally prefixed with a UTF-8 byte order
// mark, carrying NAME, VERSION and URL. Remote manifests may also carry
// GITHUB and DOWNLOAD hosting metadata. Documents are validated against an
// embedded CUE schema before decoding.
package manifest
