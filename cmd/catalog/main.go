package main

import (
	"log"

	"github.com/atlasvoyages/catalog/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ catalog failed to start: %v", err)
	}
}
