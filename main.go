package main

import (
	"os"

	"github.com/nikolayk812/vespa-storefront/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
