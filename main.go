package main

import (
	"github.com/joho/godotenv"

	"github.com/clinicdesk/clinicdesk/cmd"
)

// version will be set by goreleaser during build
var version = "dev"

func main() {
	// Load a .env file when present so local runs pick up OAuth credentials.
	_ = godotenv.Load()

	cmd.SetVersion(version)
	cmd.Execute()
}
