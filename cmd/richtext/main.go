package main

import (
	"os"

	"github.com/derickschaefer/richtext/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
