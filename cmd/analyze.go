/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/labconsensus/analysis"
	"github.com/humaidq/labconsensus/consensus"
)

// CmdAnalyze runs one case from a JSON file and prints the report.
var CmdAnalyze = &cli.Command{
	Name:  "analyze",
	Usage: "Analyze a case file and print the report as JSON",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "case JSON file (sex, age, symptoms, context, values), or - for stdin",
		},
		&cli.StringFlag{
			Name:    "candidates",
			Aliases: []string{"c"},
			Usage:   "JSON array of ranked candidates; skips the LLM and aggregates these instead",
		},
	}, engineFlags()...),
	Action: analyze,
}

func analyze(ctx context.Context, cmd *cli.Command) error {
	cfg, err := engineConfig(engineOptionsFrom(cmd))
	if err != nil {
		return err
	}

	return runAnalyze(ctx, analysis.NewEngine(cfg), os.Stdin, os.Stdout, cmd.String("input"), cmd.String("candidates"))
}

func runAnalyze(ctx context.Context, engine *analysis.Engine, stdin io.Reader, out io.Writer, inputPath, candidatesPath string) error {
	if inputPath == "" {
		return errInputRequired
	}

	var input analysis.Input
	if err := readJSON(inputPath, stdin, &input); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	input.Normalize()

	var (
		report *analysis.Report
		err    error
	)

	if candidatesPath != "" {
		var cands []consensus.Candidate
		if err := readJSON(candidatesPath, stdin, &cands); err != nil {
			return fmt.Errorf("failed to read candidates: %w", err)
		}

		report, err = engine.Evaluate(input, cands)
	} else {
		report, err = engine.Analyze(ctx, input)
	}

	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(report)
}

func readJSON(path string, stdin io.Reader, dst interface{}) error {
	var r io.Reader = stdin

	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		r = f
	}

	return json.NewDecoder(r).Decode(dst)
}
