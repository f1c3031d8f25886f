// Command segfit fits optimal piecewise-linear approximations to CSV series
// and encodes them as segment blobs.
package main

import (
	"os"
)

func main() {
	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}
