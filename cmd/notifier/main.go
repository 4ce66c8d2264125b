package main

import (
	"context"
	"log"

	"github.com/pioneercards/storefront/internal/app/notifier"
)

func main() {
	if err := notifier.Run(context.Background()); err != nil {
		log.Fatalf("notifier: %v", err)
	}
}
