package main

import (
	"fmt"
	"os"

	"github.com/dmitrymomot/cookiejar/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.New(version).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "cookiejar: %s\n", err)
		os.Exit(1)
	}
}
