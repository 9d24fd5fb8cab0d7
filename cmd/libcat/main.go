// Package main is the entry point for the libcat command-line client.
package main

import (
	"os"

	"github.com/aoideee/library-catalog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
