package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"expenses/internal/amqp"
	"expenses/internal/cli"
	"expenses/internal/config"
	"expenses/internal/log"
	"expenses/internal/report"
	"expenses/internal/services"
)

const program = "expense-analyzer"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the process exit code:
// 0 on success, 1 on a runtime failure, 2 on bad command line syntax.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	logger, err := cli.SetupLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	opts, err := cli.ParseArgs(program, args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	req, err := cli.Resolve(opts)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	svc := services.NewAnalysisService(
		report.NewPrinter(stdout),
		report.NewExporter(report.ExportOptions{BOMPrefix: cfg.ExportBOM}),
		newPublisher(cfg, logger),
		logger,
	)
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Warn("Failed to close publisher", log.FieldError, err)
		}
	}()

	if _, err := svc.Run(ctx, req); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// newPublisher connects to AMQP when configured. A broker that cannot be
// reached disables notifications for this run instead of failing it.
func newPublisher(cfg *config.Config, logger *log.Logger) services.Publisher {
	if !cfg.NotificationsEnabled() {
		return nil
	}
	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey, cfg.AMQPPublishTimeout)
	if err != nil {
		logger.Error("Failed to connect to AMQP, summary notifications disabled", log.FieldError, err)
		return nil
	}
	logger.Info("Connected to AMQP", log.FieldExchange, cfg.AMQPExchange, log.FieldRoutingKey, cfg.AMQPRoutingKey)
	return client
}
