package main

import (
	"os"

	"github.com/dshills/confmaker/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
