package main

import (
	"fmt"
	"os"

	"github.com/wesleyorama2/jsonreq/internal/cli"
)

// Main is the entry point for the application
// It's exported to make it testable
func Main() int {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return cli.ExitCode(err)
	}
	return 0
}

func main() {
	os.Exit(Main())
}
