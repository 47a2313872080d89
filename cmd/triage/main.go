package main

import (
	"os"

	"github.com/triageai/triage/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
