package main

import (
	"os"

	"github.com/mivori/sub2bdnxml/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
