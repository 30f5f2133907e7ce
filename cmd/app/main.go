package main

import (
	"context"

	"eventhub/config"
	"eventhub/di"
	"eventhub/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.Kafka.Enable {
		notifier := di.InitializeNotifier()
		go notifier.Run(context.Background())
	}

	http := di.InitializeService()
	http.Serve()
}
