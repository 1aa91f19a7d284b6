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

	"github.com/charmbracelet/lipgloss"
	"github.com/poiesic/roadmapper"
	"github.com/poiesic/roadmapper/config"
	"github.com/poiesic/roadmapper/core"
	"github.com/poiesic/roadmapper/eval"
	"github.com/poiesic/roadmapper/roadmap"
	"github.com/poiesic/roadmapper/search"
	"github.com/urfave/cli/v2"
	"go.yaml.in/yaml/v3"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	urlStyle   = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("8"))
	typeStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("10"))
	linkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "roadmapper",
		Usage: "Find learning resources and build learning roadmaps",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML/JSON/TOML config file",
				EnvVars: []string{"ROADMAPPER_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "resources",
				Usage:     "Find learning resources for a query",
				ArgsUsage: "<query>",
				Action:    resourcesCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of resources",
						Value:   roadmap.DefaultResourcesPerTopic,
					},
					&cli.BoolFlag{
						Name:  "no-expansion",
						Usage: "Search with the original query only",
					},
				},
			},
			{
				Name:      "roadmap",
				Usage:     "Generate a learning roadmap for a goal",
				ArgsUsage: "<goal>",
				Action:    roadmapCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (yaml, json)",
						Value:   "yaml",
					},
				},
			},
			{
				Name:   "index",
				Usage:  "Embed and index a resource corpus",
				Action: indexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "corpus",
						Usage:    "Path to a JSON array of corpus records",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records embedded per request (0 uses config)",
					},
				},
			},
			{
				Name:   "evaluate",
				Usage:  "Score retrieval against ground-truth cases",
				Action: evaluateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "cases",
						Usage:    "Path to a YAML or JSON file of evaluation cases",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "k",
						Usage: "Cutoff for Recall@k and NDCG@k",
						Value: 5,
					},
					&cli.BoolFlag{
						Name:  "compare",
						Usage: "Compare single-query retrieval against query expansion",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (yaml, json)",
						Value:   "yaml",
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Re-embed every indexed resource with the configured embedder",
				Action: reembedCommand,
			},
		},
	}
}

func openEngine(ctx context.Context, c *cli.Context) (*roadmapper.Engine, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	engine, err := roadmapper.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open engine: %w", err)
	}
	return engine, nil
}

func resourcesCommand(c *cli.Context) error {
	ctx := context.Background()
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a query is required")
	}

	engine, err := openEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()

	var opts []search.Option
	if c.Bool("no-expansion") {
		opts = append(opts, search.WithQueryExpansion(false))
	}
	finder, err := engine.NewFinder(opts...)
	if err != nil {
		return fmt.Errorf("failed to create finder: %w", err)
	}
	defer finder.Release()

	resources, err := finder.FindResources(ctx, query, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to find resources: %w", err)
	}
	printResources(c.App.Writer, resources)
	return nil
}

func printResources(w io.Writer, resources []core.Resource) {
	for i, r := range resources {
		title := titleStyle.Render(r.Title)
		if r.IsSearchLink() {
			title = linkStyle.Render(r.Title)
		}
		fmt.Fprintf(w, "%d. %s %s\n", i+1, title, typeStyle.Render("["+r.Type+"]"))
		fmt.Fprintf(w, "   %s\n", urlStyle.Render(r.URL))
		if r.Description != "" {
			fmt.Fprintf(w, "   %s\n", r.Description)
		}
	}
}

type roadmapOutput struct {
	Roadmap    *core.Roadmap      `json:"roadmap" yaml:"roadmap"`
	Assessment roadmap.Assessment `json:"assessment" yaml:"assessment"`
}

func roadmapCommand(c *cli.Context) error {
	ctx := context.Background()
	goal := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if goal == "" {
		return fmt.Errorf("a goal is required")
	}

	engine, err := openEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()

	finder, err := engine.NewFinder()
	if err != nil {
		return fmt.Errorf("failed to create finder: %w", err)
	}
	defer finder.Release()

	assembler, err := engine.NewAssembler(finder)
	if err != nil {
		return fmt.Errorf("failed to create assembler: %w", err)
	}
	defer assembler.Release()

	rm, err := assembler.Generate(ctx, goal)
	if err != nil {
		return fmt.Errorf("failed to generate roadmap: %w", err)
	}
	return encode(c.App.Writer, c.String("format"), roadmapOutput{Roadmap: rm, Assessment: roadmap.Assess(rm)})
}

func indexCommand(c *cli.Context) error {
	ctx := context.Background()
	engine, err := openEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()

	pipeline, err := engine.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	stats, err := pipeline.IngestFile(ctx, c.String("corpus"))
	fmt.Fprintf(c.App.Writer, "Indexed: %d, skipped: %d, failed: %d\n", stats.Indexed, stats.Skipped, stats.Failed)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}
	return nil
}

func evaluateCommand(c *cli.Context) error {
	ctx := context.Background()
	cases, err := eval.LoadCases(c.String("cases"))
	if err != nil {
		return fmt.Errorf("failed to load cases: %w", err)
	}

	engine, err := openEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()

	k := c.Int("k")
	harness := eval.NewHarness()

	candidate, err := engine.NewFinder(search.WithQueryExpansion(true))
	if err != nil {
		return fmt.Errorf("failed to create finder: %w", err)
	}
	defer candidate.Release()

	candidateReport, err := harness.Run(ctx, candidate, cases, k)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	if !c.Bool("compare") {
		return encode(c.App.Writer, c.String("format"), candidateReport)
	}

	baseline, err := engine.NewFinder(search.WithQueryExpansion(false))
	if err != nil {
		return fmt.Errorf("failed to create baseline finder: %w", err)
	}
	defer baseline.Release()

	baselineReport, err := harness.Run(ctx, baseline, cases, k)
	if err != nil {
		return fmt.Errorf("baseline evaluation failed: %w", err)
	}
	return encode(c.App.Writer, c.String("format"), eval.Compare(baselineReport, candidateReport))
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()
	engine, err := openEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()

	reembedder, err := engine.NewReembedder(c.App.ErrWriter)
	if err != nil {
		return fmt.Errorf("failed to create reembedder: %w", err)
	}
	result, err := reembedder.Run(ctx)
	if err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Reembedded %d resources in %s\n", result.Processed, result.Elapsed)
	return nil
}

func encode(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q: must be yaml or json", format)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

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

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
