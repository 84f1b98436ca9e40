/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/nephroclinic/clinic/cmd"
	"github.com/nephroclinic/clinic/logging"
)

func main() {
	logging.Init()
	logger := logging.Logger(logging.SourceApp)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "clinic",
		Usage: "Nephrology clinic website and kidney lab interpreter",
		Commands: []*cli.Command{
			cmd.CmdStart,
			cmd.CmdMigrate,
			cmd.CmdCreateAdmin,
			cmd.CmdAnalyze,
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		logger.Error("Command failed", "error", err)
		stop()
		os.Exit(1)
	}
}
