package main

import (
	"log"

	"github.com/broncospizza/orders-api/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	a.Run()
}
