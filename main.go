/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/labconsensus/cmd"
	"github.com/humaidq/labconsensus/logging"
)

func main() {
	logging.Init()

	app := &cli.Command{
		Name:  "labconsensus",
		Usage: "Lab result correlation and multi-model diagnostic consensus",
		Commands: []*cli.Command{
			cmd.CmdServe,
			cmd.CmdAnalyze,
			cmd.CmdCatalog,
			cmd.CmdMigrate,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
