package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"fwdash/app"
	"fwdash/cli"
	"fwdash/internal/logger"
	"fwdash/internal/logrotate"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitErrorUsage = 1
	ExitErrorRun   = 2
)

func main() {
	config, err := cli.ParseFlags()
	if err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n\n")
		cli.PrintUsage()
		os.Exit(ExitErrorUsage)
	}

	initLogger(config)

	appConfig := cli.ConfigToAppConfig(config)
	application := app.New(appConfig)
	if err := application.Initialize(); err != nil {
		logger.Error("Invalid configuration: %v", err)
		os.Exit(ExitErrorUsage)
	}

	// Set up signal handling so a scheduler can stop a run cleanly
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		logger.Info("Received interrupt signal, shutting down...")
		cancel()
	}()

	status, err := application.Run(ctx)
	if err != nil {
		if ctx.Err() == context.Canceled {
			logger.Info("Run was interrupted")
			os.Exit(ExitErrorRun)
		}
		logger.Error("Run failed: %v", err)
		os.Exit(ExitErrorRun)
	}

	if config.JSONStatus {
		if data, err := json.MarshalIndent(status, "", "  "); err == nil {
			os.Stdout.Write(append(data, '\n'))
		}
	}
}

// initLogger initializes the logger with rotation if a log file is specified
func initLogger(config *cli.Config) {
	logger.Init(config.Verbose, config.Silent)

	if config.LogFile == "" {
		return
	}

	rotateConfig := logrotate.Config{
		MaxSize:    config.LogMaxSize,
		MaxAge:     config.LogMaxAge,
		MaxBackups: config.LogMaxBackups,
		Compress:   config.LogCompress,
		LocalTime:  true,
	}

	logWriter := logrotate.NewWriter(config.LogFile, rotateConfig)

	// Log to both the rotated file and stdout
	logger.SetOutput(logrotate.MultiWriter(logWriter, os.Stdout))
}
