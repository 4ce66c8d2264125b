package main

import (
	"context"
	"log"

	"github.com/pioneercards/storefront/internal/app/catalogapi"
)

func main() {
	if err := catalogapi.Run(context.Background()); err != nil {
		log.Fatalf("catalog-api: %v", err)
	}
}
