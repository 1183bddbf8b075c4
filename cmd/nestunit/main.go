// Package main is the entry point for the nestunit CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/nestunit/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
