// SPDX-License-Identifier: MPL-2.0

// Package config handles lwau settings using Viper with JSON as the file format.
//
// Settings live in <root>/PluginData/lwau.json next to the game's GameData
// directory. The file holds the default download directory and the set of
// "recipe" manifests, whose updates are handled by a separate recipe system and
// must never be downloaded by lwau. A missing file yields defaults, and the
// LWAU_DOWNLOAD_DIR and LWAU_HTTP_TIMEOUT environment variables override the
// file for a single run.
package config
