// Package main provides the entry point for the evalmetrics CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/Sumatoshi-tech/evalmetrics/cmd/evalmetrics/commands"
	"github.com/Sumatoshi-tech/evalmetrics/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	err := commands.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
