package main

import (
	"os"

	"github.com/ablens/ablens/internal/cli"
	"github.com/joho/godotenv"
)

func main() {
	// Provider keys and GITHUB_TOKEN may live in a local .env.
	_ = godotenv.Load()

	os.Exit(cli.Run())
}
