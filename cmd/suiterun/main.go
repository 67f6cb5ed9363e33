// Package main is the entry point for the suiterun CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/suiterun/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
