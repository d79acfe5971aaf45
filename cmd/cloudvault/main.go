package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/EgorLis/cloud-vault/internal/app"
)

// @title       CloudVault API
// @version     1.0
// @description Файловый каталог: загрузка в S3, обогащение метаданных, поиск и выдача.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx)
	if err != nil {
		log.Fatalf("build failed: %v", err)
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}
