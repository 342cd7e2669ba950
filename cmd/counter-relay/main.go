// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "counter-relay" hosts the counter ledger behind a JSON-RPC endpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/MuhKar1/Counter-dApp/api/jsonrpc"
	"github.com/MuhKar1/Counter-dApp/genesis"
	"github.com/MuhKar1/Counter-dApp/server"
	"github.com/MuhKar1/Counter-dApp/vm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path of the JSON config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "counter-relay exited with error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	config, err := LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	log, err := newLogger(config)
	if err != nil {
		return fmt.Errorf("could not build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	var genesisBytes []byte
	if config.GenesisFile != "" {
		genesisBytes, err = os.ReadFile(config.GenesisFile)
		if err != nil {
			return fmt.Errorf("could not read genesis: %w", err)
		}
	}
	gen, err := genesis.New(genesisBytes)
	if err != nil {
		return fmt.Errorf("could not parse genesis: %w", err)
	}

	ctx := context.Background()
	metricsRegistry := prometheus.NewRegistry()
	v, err := vm.New(ctx, log, gen, metricsRegistry)
	if err != nil {
		return fmt.Errorf("could not create host: %w", err)
	}
	defer func() { _ = v.Close() }()

	listener, err := net.Listen("tcp", net.JoinHostPort(config.HTTPHost, fmt.Sprintf("%d", config.HTTPPort)))
	if err != nil {
		return err
	}
	srv := server.New(
		log,
		listener,
		server.DefaultHTTPConfig(),
		config.AllowedOrigins,
		shutdownTimeout,
	)

	rpcHandler, err := server.NewHandler(jsonrpc.NewJSONRPCServer(v), jsonrpc.Name)
	if err != nil {
		return err
	}
	if err := srv.AddRoute(rpcHandler, jsonrpc.Endpoint); err != nil {
		return err
	}
	if err := srv.AddRoute(promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}), "/metrics"); err != nil {
		return err
	}

	errs := make(chan error, 1)
	go func() {
		log.Info("serving",
			zap.String("address", listener.Addr().String()),
		)
		errs <- srv.Dispatch()
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sig:
		log.Info("shutting down", zap.Stringer("signal", s))
		return srv.Shutdown()
	case err := <-errs:
		return err
	}
}

func newLogger(config *Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(config.LogLevel)
	if err != nil {
		return nil, err
	}
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewProductionEncoderConfig()),
		zapcore.Lock(os.Stderr),
		level,
	)
	if config.LogFile == "" {
		return zap.New(consoleCore), nil
	}
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(&lumberjack.Logger{
			Filename:   config.LogFile,
			MaxSize:    config.LogMaxSizeMB,
			MaxBackups: config.LogMaxBackups,
		}),
		level,
	)
	return zap.New(zapcore.NewTee(consoleCore, fileCore)), nil
}
