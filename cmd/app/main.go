package main

import (
	"context"

	"cohost/config"
	"cohost/di"
	"cohost/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	consumer := di.InitializeWaitlistConsumer()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.Run(ctx)

	http := di.InitializeService()
	http.Serve()
}
