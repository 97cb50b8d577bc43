// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/lwau/lwau/cmd/lwau"

func main() {
	cmd.Execute()
}
