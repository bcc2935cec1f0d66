package main

import (
	"fmt"
	"os"

	"github.com/rhyn0/anime-rest-api/internal/tools/seed"
)

func main() {
	if err := seed.NewCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
