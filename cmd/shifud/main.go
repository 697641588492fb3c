// Package main is the entry point for the shifud server.
package main

import (
	"os"

	"github.com/runger/shifu/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
