package main

import (
	"os"

	"github.com/shouni/go-cli-samples/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
