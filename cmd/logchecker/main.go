package main

import (
	"os"

	"github.com/rileyhilliard/logchecker/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
