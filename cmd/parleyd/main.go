// parleyd applies schema migrations to the shared chatbot database and runs
// the periodic credential housekeeping sweeper until signalled.
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/parleyhq/parley/internal/auth/app"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
