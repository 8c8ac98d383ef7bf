package config

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env when present; deployments set variables directly.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}
}
