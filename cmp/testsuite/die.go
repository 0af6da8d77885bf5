// die.go -- fatal error helper for the standalone test-suite runner

package main

import (
	"fmt"
	"os"
)

// Die prints a formatted error to stderr, prefixed with the program
// name, and exits with status 1.
func Die(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	fmt.Fprintf(os.Stderr, "%s: %s\n", Z, msg)
	os.Exit(1)
}
