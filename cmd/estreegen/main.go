// Package main provides the estreegen command.
package main

import (
	"os"

	"github.com/estree/estreegen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitError)
	}
}
