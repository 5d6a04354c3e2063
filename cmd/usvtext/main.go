// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"github.com/usvtext/usvtext/cmd/internal/docs"
	"github.com/usvtext/usvtext/cmd/internal/env"
	"github.com/usvtext/usvtext/cmd/internal/printconfig"
	"github.com/usvtext/usvtext/cmd/internal/status"
	"github.com/usvtext/usvtext/cmd/usvtext/app"
	"github.com/usvtext/usvtext/cmd/usvtext/app/check"
	"github.com/usvtext/usvtext/cmd/usvtext/app/sanitize"
	"github.com/usvtext/usvtext/internal/config"
	"github.com/usvtext/usvtext/internal/flags"
	"github.com/usvtext/usvtext/internal/metrics"
	"github.com/usvtext/usvtext/internal/scanservice"
	"github.com/usvtext/usvtext/internal/version"
	"github.com/usvtext/usvtext/ports"
)

const serviceName = "usvtext"

func main() {
	svc := flags.NewService(ports.ScannerAdminHTTP)
	v := viper.New()

	rootCommand := &cobra.Command{
		Use:   "usvtext",
		Short: "usvtext checks and repairs UTF-16 well-formedness",
		Long: `usvtext scans UTF-16 code unit sequences for unpaired surrogates, repairs
them with U+FFFD, and can serve both operations over HTTP.`,
	}

	serveCommand := &cobra.Command{
		Use:   "serve",
		Short: "Run the scanner HTTP API and admin server",
		Long:  `Run the scanner HTTP API and admin server until SIGTERM.`,
		RunE: func(_ *cobra.Command, _ /* args */ []string) error {
			if err := svc.Start(v); err != nil {
				return err
			}
			logger := svc.Logger // shortcut
			serverOptions := new(app.ServerOptions).InitFromViper(v)
			metricsFactory := svc.MetricsFactory.Namespace(metrics.NSOptions{
				Name: serviceName,
				Tags: serverOptions.Tags,
			})
			version.NewInfoMetrics(metricsFactory)

			scanner := scanservice.NewScanner(scanservice.ScannerParams{
				Logger:         logger,
				MetricsFactory: metricsFactory,
				CacheSize:      serverOptions.CacheSize,
				CacheTTL:       serverOptions.CacheTTL,
			})
			batch := scanservice.NewBatchProcessor(scanservice.BatchProcessorParams{
				Scanner:        scanner,
				Logger:         logger,
				MetricsFactory: metricsFactory,
				QueueSize:      serverOptions.QueueSize,
				NumWorkers:     serverOptions.NumWorkers,
				MaxJobs:        serverOptions.MaxJobs,
				JobTTL:         serverOptions.JobTTL,
			})

			server, err := app.NewServer(logger, scanner, batch, serverOptions, metricsFactory)
			if err != nil {
				logger.Fatal("Failed to create scanner server", zap.Error(err))
			}
			go func() {
				for status := range server.HealthCheckStatus() {
					svc.SetHealthCheckStatus(status)
				}
			}()
			if err := server.Start(); err != nil {
				logger.Fatal("Could not start scanner server", zap.Error(err))
			}

			svc.RunAndThen(func() {
				server.Close()
				batch.Stop()
			})
			return nil
		},
	}

	cliLogger, _ := zap.NewDevelopment()

	rootCommand.AddCommand(serveCommand)
	rootCommand.AddCommand(check.Command(viper.New(), cliLogger))
	rootCommand.AddCommand(sanitize.Command(viper.New(), cliLogger))
	rootCommand.AddCommand(version.Command())
	rootCommand.AddCommand(env.Command())
	rootCommand.AddCommand(docs.Command(v))
	rootCommand.AddCommand(status.Command(v, ports.ScannerAdminHTTP))
	rootCommand.AddCommand(printconfig.Command(v))

	config.AddFlags(
		v,
		serveCommand,
		svc.AddFlags,
		app.AddFlags,
	)

	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}
