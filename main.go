package main

import (
	"os"

	"contexthub/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
