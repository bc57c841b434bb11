package main

import (
	"os"

	"github.com/bnema/trivia-proxy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
