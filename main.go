package main

import (
	"os"

	"github.com/gopasrc/pasrc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
