/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/labconsensus/analysis"
	"github.com/humaidq/labconsensus/consensus"
	"github.com/humaidq/labconsensus/reasoning"
)

const (
	defaultSourceTimeout = 90 * time.Second
	defaultLLMModel      = "llama3.1"
)

// engineFlags configure the reasoning sources and the aggregator. They are
// shared by serve and analyze.
func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "llm-url",
			Sources: cli.EnvVars("LLM_URL"),
			Usage:   "base URL of an OpenAI-compatible server (e.g., http://localhost:11434)",
		},
		&cli.StringFlag{
			Name:    "llm-model",
			Value:   defaultLLMModel,
			Sources: cli.EnvVars("LLM_MODEL"),
			Usage:   "model name sent with every completion request",
		},
		&cli.StringFlag{
			Name:    "llm-api-key",
			Sources: cli.EnvVars("LLM_API_KEY"),
			Usage:   "bearer token for the LLM server, if it needs one",
		},
		&cli.StringFlag{
			Name:    "personas-file",
			Sources: cli.EnvVars("PERSONAS_FILE"),
			Usage:   "YAML file replacing the built-in reasoning personas",
		},
		&cli.IntFlag{
			Name:    "total-sources",
			Sources: cli.EnvVars("CONSENSUS_TOTAL_SOURCES"),
			Usage:   "planned number of sources for consensus levels (default: number of personas)",
		},
		&cli.DurationFlag{
			Name:    "source-timeout",
			Value:   defaultSourceTimeout,
			Sources: cli.EnvVars("SOURCE_TIMEOUT"),
			Usage:   "deadline for a single reasoning source",
		},
	}
}

type engineOptions struct {
	LLMURL        string
	LLMModel      string
	LLMAPIKey     string
	PersonasFile  string
	TotalSources  int
	SourceTimeout time.Duration
}

func engineOptionsFrom(cmd *cli.Command) engineOptions {
	return engineOptions{
		LLMURL:        cmd.String("llm-url"),
		LLMModel:      cmd.String("llm-model"),
		LLMAPIKey:     cmd.String("llm-api-key"),
		PersonasFile:  cmd.String("personas-file"),
		TotalSources:  cmd.Int("total-sources"),
		SourceTimeout: cmd.Duration("source-timeout"),
	}
}

// buildSources returns one reasoning source per persona. Without an LLM URL
// there are no sources and only the deterministic endpoints work.
func buildSources(opts engineOptions) ([]reasoning.Source, error) {
	if strings.TrimSpace(opts.LLMURL) == "" {
		return nil, nil
	}

	personas := reasoning.DefaultPersonas()

	if opts.PersonasFile != "" {
		loaded, err := reasoning.LoadPersonas(opts.PersonasFile)
		if err != nil {
			return nil, err
		}

		personas = loaded
	}

	client, err := reasoning.NewClient(reasoning.ClientConfig{
		URL:     opts.LLMURL,
		Model:   opts.LLMModel,
		APIKey:  opts.LLMAPIKey,
		Timeout: opts.SourceTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure LLM client: %w", err)
	}

	return reasoning.PersonaSources(personas, client), nil
}

// engineConfig assembles the analysis configuration shared by the commands.
func engineConfig(opts engineOptions) (analysis.Config, error) {
	if opts.TotalSources < 0 {
		return analysis.Config{}, errInvalidTotalSources
	}

	sources, err := buildSources(opts)
	if err != nil {
		return analysis.Config{}, err
	}

	cfg := consensus.DefaultConfig()
	// Zero lets the engine count the configured sources.
	cfg.TotalSources = opts.TotalSources

	return analysis.Config{
		Consensus:     cfg,
		Sources:       sources,
		SourceTimeout: opts.SourceTimeout,
	}, nil
}
