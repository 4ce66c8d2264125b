package main

import (
	"context"
	"log"

	"github.com/pioneercards/storefront/internal/app/gatewayapp"
)

func main() {
	if err := gatewayapp.Run(context.Background()); err != nil {
		log.Fatalf("gateway: %v", err)
	}
}
