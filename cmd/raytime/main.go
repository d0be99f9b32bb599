// SPDX-License-Identifier: MIT

// Command raytime computes seismic travel times and raypaths in spherically
// symmetric, transversely isotropic Earth models.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
