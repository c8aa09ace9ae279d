// Package main starts the zoomkit editor service.
package main

import (
	"flag"
	"fmt"
	"os"
)

// main is the entrypoint for the zoomkit service.
func main() {
	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	flag.Parse()

	if err := run(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}
