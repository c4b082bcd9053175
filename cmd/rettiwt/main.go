package main

import (
	"os"

	"github.com/omarcinkonis/rettiwt-go/cmd/rettiwt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
