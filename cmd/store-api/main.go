package main

import (
	"context"
	"log"

	"github.com/pioneercards/storefront/internal/app/storeapi"
)

func main() {
	if err := storeapi.Run(context.Background()); err != nil {
		log.Fatalf("store-api: %v", err)
	}
}
