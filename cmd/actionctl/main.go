// Command actionctl runs the VaspX actions locally against the reply catalog,
// without the dialogue runtime or the HTTP server.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
