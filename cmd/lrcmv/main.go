package main

import (
	"os"

	"github.com/tyuan87/lrcmv/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
