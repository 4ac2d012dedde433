package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/ppiankov/legalyze/internal/cli"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
