package main

import (
	"os"

	"github.com/unknownshopper/teapaparalosteapanecos/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
