// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/cinerec"
	"github.com/poiesic/cinerec/ai"
	"github.com/poiesic/cinerec/catalog/badger"
	"github.com/poiesic/cinerec/core"
	"github.com/poiesic/cinerec/ingest"
	"github.com/poiesic/cinerec/intent"
	"github.com/poiesic/cinerec/recommend"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "cinerec",
		Usage: "Agentic movie recommendations over a local catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "load",
				Usage:  "Load a TMDB-style CSV export into the catalog",
				Action: loadCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "csv",
						Aliases:  []string{"f"},
						Usage:    "Path to the CSV export",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB catalog directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size for batch writes (0 uses half the CPUs)",
						Value: 0,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of rows to write in each batch",
						Value: 256,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N rows",
						Value: 1000,
					},
				},
			},
			{
				Name:      "recommend",
				Usage:     "Recommend movies for a free-form request",
				ArgsUsage: "\"what are you in the mood for?\"",
				Action:    recommendCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB catalog directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Model used for intent extraction",
						Value: "qwen3:4b",
					},
					&cli.StringFlag{
						Name:  "analyst-model",
						Usage: "Model used for writing pitches (defaults to model if not specified)",
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of recommendations to return",
						Value: 5,
					},
					&cli.Float64Flag{
						Name:  "genre-weight",
						Usage: "Scoring weight for genre overlap",
						Value: 0.6,
					},
					&cli.Float64Flag{
						Name:  "keyword-weight",
						Usage: "Scoring weight for keyword overlap",
						Value: 0.4,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum extraction attempts against the model",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Delay between extraction attempts",
						Value: 500 * time.Millisecond,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Emit the ranked result as JSON instead of markdown",
					},
				},
			},
			{
				Name:   "genres",
				Usage:  "List the catalog's master genre vocabulary",
				Action: genresCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB catalog directory",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadCommand(c *cli.Context) error {
	ctx := context.Background()

	// Validate flags
	dbPath := c.String("db")
	if dbPath == "" {
		return fmt.Errorf("database path is required")
	}
	if c.Int("report-interval") <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}

	file, err := os.Open(c.String("csv"))
	if err != nil {
		return fmt.Errorf("failed to open csv file: %w", err)
	}
	defer file.Close()

	// Open database
	backend, err := badger.OpenBackend(dbPath, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	store, err := badger.NewMovieStore(backend)
	if err != nil {
		backend.Close()
		return fmt.Errorf("failed to create movie store: %w", err)
	}
	defer store.Close()

	// Create loader
	opts := []ingest.Option{
		ingest.WithBatchSize(c.Int("batch-size")),
	}
	if workers := c.Int("workers"); workers > 0 {
		opts = append(opts, ingest.WithPoolSize(workers))
	}

	loader, err := ingest.NewLoader(store, opts...)
	if err != nil {
		return fmt.Errorf("failed to create loader: %w", err)
	}
	defer loader.Release()

	fmt.Fprintf(os.Stderr, "Database: %s\n", dbPath)
	fmt.Fprintf(os.Stderr, "CSV: %s\n", c.String("csv"))
	fmt.Fprintln(os.Stderr)

	tracker := ingest.NewProgressTracker(os.Stderr, 0, c.Int("report-interval"))
	tracker.Start()

	stats, err := loader.LoadCSV(ctx, file, tracker)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	tracker.Finish()

	fmt.Fprintf(os.Stderr, "Loaded %d movies (%d rows, %d skipped) in %s\n",
		stats.Loaded, stats.Rows, stats.Skipped, tracker.Elapsed().Round(time.Millisecond))
	return nil
}

func recommendCommand(c *cli.Context) error {
	ctx := context.Background()

	request := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(request) == "" {
		return fmt.Errorf("provide a request, e.g. cinerec recommend -d ./catalog \"something like Heat\"")
	}

	// Analyst model defaults to the extraction model if not specified
	model := c.String("model")
	analystModel := c.String("analyst-model")
	if analystModel == "" {
		analystModel = model
	}

	// Create AI config
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithExtractorModel(model),
		ai.WithAnalystModel(analystModel),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	// Create extraction config
	intentConfig := intent.NewConfig(
		intent.WithMaxAttempts(c.Int("max-retries")),
		intent.WithRetryDelay(c.Duration("retry-delay")),
	)
	if err := intentConfig.Validate(); err != nil {
		return fmt.Errorf("invalid extraction configuration: %w", err)
	}

	// Create scoring config
	recommendConfig := recommend.NewConfig(
		recommend.WithGenreWeight(c.Float64("genre-weight")),
		recommend.WithKeywordWeight(c.Float64("keyword-weight")),
		recommend.WithTopK(c.Int("top-k")),
	)
	recommendConfig.Normalize()
	if err := recommendConfig.Validate(); err != nil {
		return fmt.Errorf("invalid scoring configuration: %w", err)
	}

	pipeline, err := cinerec.NewPipeline(c.String("db"),
		cinerec.WithAIConfig(aiConfig),
		cinerec.WithIntentConfig(intentConfig),
		cinerec.WithRecommendConfig(recommendConfig),
		cinerec.WithMonitor(&stageMonitor{w: os.Stderr}),
	)
	if err != nil {
		return fmt.Errorf("failed to open pipeline: %w", err)
	}
	defer pipeline.Close()

	result, err := pipeline.Recommend(ctx, request)
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	if c.Bool("json") {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	fmt.Print(renderMarkdown(result))
	return nil
}

func genresCommand(c *cli.Context) error {
	ctx := context.Background()

	// Open database
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	store, err := badger.NewMovieStore(backend)
	if err != nil {
		backend.Close()
		return fmt.Errorf("failed to create movie store: %w", err)
	}
	defer store.Close()

	genres, err := store.Genres(ctx)
	if err != nil {
		return fmt.Errorf("failed to read genres: %w", err)
	}

	if len(genres) == 0 {
		fmt.Fprintln(os.Stderr, "The catalog is empty.")
		return nil
	}

	for _, genre := range genres {
		fmt.Println(genre)
	}
	return nil
}

// stageMonitor streams pipeline stages to the terminal as the request
// moves through them.
type stageMonitor struct {
	w io.Writer
}

func (m *stageMonitor) Start(request string) {
	fmt.Fprintf(m.w, "Request: %q\n", request)
}

func (m *stageMonitor) AfterExtraction(in *core.Intent) {
	fmt.Fprintf(m.w, "Intent: title=%q genres=%v keywords=%v\n", in.Title, in.Genres, in.Keywords)
}

func (m *stageMonitor) AfterRouting(strategy core.Strategy) {
	fmt.Fprintf(m.w, "Strategy: %s\n", strategy)
}

func (m *stageMonitor) AnchorResolved(anchor *core.Movie) {
	fmt.Fprintf(m.w, "Anchor: %s\n", anchor.Title)
}

func (m *stageMonitor) AnchorMiss(title string) {
	fmt.Fprintf(m.w, "Anchor: %q not in catalog, matching on categories\n", title)
}

func (m *stageMonitor) AfterScoring(candidates int) {
	fmt.Fprintf(m.w, "Candidates scored: %d\n", candidates)
}

func (m *stageMonitor) AfterJustification(annotated int) {
	fmt.Fprintf(m.w, "Pitches written: %d\n", annotated)
}

func (m *stageMonitor) Finish(result *core.RankedResult) {
	fmt.Fprintf(m.w, "Recommendations: %d\n\n", len(result.Recommendations))
}

// renderMarkdown formats a ranked result the way the agent presents it:
// a numbered markdown list with one pitch per movie, or a distinct
// sentence for the empty outcome.
func renderMarkdown(result *core.RankedResult) string {
	if result.Empty() {
		return "After analysis, I couldn't find a strong match for your specific criteria.\n"
	}

	var sb strings.Builder
	sb.WriteString("Based on your request, here are a few hand-picked recommendations I think you'll love:\n\n")
	for i, rec := range result.Recommendations {
		score := "N/A"
		if rec.VoteAverage > 0 {
			score = fmt.Sprintf("%.1f", rec.VoteAverage)
		}
		fmt.Fprintf(&sb, "### %d. %s (⭐ %s)\n", i+1, rec.Title, score)
		fmt.Fprintf(&sb, "**Why it's a perfect match:** %s\n\n---\n\n", rec.Justification)
	}
	return sb.String()
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
