// ABOUTME: Entry point for the movierama terminal client
// ABOUTME: Interactive movie browser plus scriptable session and movie commands

package main

import (
	"fmt"
	"os"

	"github.com/johnys190/movierama/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
