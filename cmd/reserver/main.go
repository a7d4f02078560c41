package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/eshopweb/order-pipeline/internal/app/reserver"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := reserver.Run(ctx); err != nil {
		log.Fatalf("reserver exited: %v", err)
	}
}
