package main

import (
	"os"

	"digital.vasic.expect/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
