package main

import (
	"os"

	"github.com/resumeroast/resumeroast/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
