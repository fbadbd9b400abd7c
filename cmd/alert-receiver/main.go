package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

var (
	configPath = flag.String("config", "", "Path to an optional config.yaml.")
	envFile    = flag.String("env-file", "", "Path to an optional .env file; variables already set in the environment win.")
)

func main() {
	flag.Parse()

	config, err := ParseConfig(*configPath, *envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	err = InitLogger(config.LogLevel, config.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.Debugf("Parsed config: %+v", config)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := NewServer(config, log)
	if err := server.Listen(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
	if err := server.Serve(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
