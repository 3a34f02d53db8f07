package main

import (
	"os"

	"github.com/atomicstack/menagerie/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
