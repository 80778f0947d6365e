// Command rematch searches files with rematch patterns and explains how a
// pattern is executed.
package main

import (
	"errors"
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	err := Execute()
	if err != nil && !errors.Is(err, errNoMatch) {
		log.Printf("Error: %v", err)
	}
	os.Exit(exitCode(err))
}

// exitCode follows grep: 0 when a line was selected, 1 when none was and 2
// on any other error.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errNoMatch):
		return 1
	default:
		return 2
	}
}
