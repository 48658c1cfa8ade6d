/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/labconsensus/biomarker"
	"github.com/humaidq/labconsensus/db"
)

// CmdCatalog prints the biomarker catalog and can sync it to the database.
var CmdCatalog = &cli.Command{
	Name:  "catalog",
	Usage: "List the biomarker catalog",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "category",
			Usage: "only list one category (e.g., thyroid, iron)",
		},
		&cli.BoolFlag{
			Name:  "sync",
			Usage: "upsert the catalog into the database after listing it",
		},
		&cli.StringFlag{
			Name:    "database-url",
			Sources: cli.EnvVars("DATABASE_URL"),
			Usage:   "PostgreSQL connection string, required with --sync",
		},
	},
	Action: catalog,
}

func catalog(ctx context.Context, cmd *cli.Command) error {
	cat := biomarker.DefaultCatalog()

	if err := printCatalog(os.Stdout, cat, cmd.String("category")); err != nil {
		return err
	}

	if !cmd.Bool("sync") {
		return nil
	}

	databaseURL := cmd.String("database-url")
	if databaseURL == "" {
		return errDatabaseURLRequired
	}

	if err := db.Init(ctx, databaseURL); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.SyncSchema(ctx, cat); err != nil {
		return fmt.Errorf("failed to sync catalog: %w", err)
	}

	fmt.Printf("Synced %d biomarkers\n", cat.Len())

	return nil
}

func printCatalog(out io.Writer, cat *biomarker.Catalog, category string) error {
	defs := cat.Definitions()

	if category = strings.ToLower(strings.TrimSpace(category)); category != "" {
		c := biomarker.Category(category)
		if !c.Valid() {
			return fmt.Errorf("%w: %s", errUnknownCategory, category)
		}

		defs = cat.ByCategory(c)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tUNIT\tLAB RANGE\tFUNCTIONAL")

	for _, def := range defs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			def.ID, def.Name, def.Category, def.Unit, def.LabRange, def.FunctionalRange)
	}

	return tw.Flush()
}
