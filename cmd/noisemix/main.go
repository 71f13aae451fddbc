// SPDX-License-Identifier: EPL-2.0

// Command noisemix plays and mixes ambient sounds from the terminal.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
