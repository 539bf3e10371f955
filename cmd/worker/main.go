// Command worker consumes domain events from RabbitMQ and appends them to
// the audit log.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/iliyamo/recipe-api/internal/config"
	"github.com/iliyamo/recipe-api/internal/logging"
	"github.com/iliyamo/recipe-api/internal/queue"
)

func main() {
	_ = godotenv.Load()

	qc := config.LoadQueueConfig()
	log := logging.New(os.Stderr, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT")).With("component", "audit-worker")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &queue.AuditConsumer{URL: qc.URL, Queue: qc.Queue, LogPath: qc.AuditLogPath, Log: log}
	log.Info(ctx, "audit worker started", "queue", qc.Queue, "log_path", qc.AuditLogPath)
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "worker:", err)
		os.Exit(1)
	}
}
