package main

import (
	"context"

	"lendsafe/internal/app/runtime"
	"lendsafe/internal/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	app, err := runtime.New(ctx)
	if err != nil {
		logger.CtxError(ctx, "failed to initialize app", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		logger.CtxError(ctx, "app stopped with error", err)
		return
	}
}
