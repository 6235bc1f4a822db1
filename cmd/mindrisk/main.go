package main

import (
	"os"

	"github.com/tsawler/mindrisk/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
