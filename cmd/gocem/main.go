// Command gocem trains policies on grid environments with the
// cross-entropy method.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
