// finetunectl is a command-line front end for the fine-tuning API
// client. All environment handling lives here; the client package
// only sees explicit values.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/tunewell/finetune-go/internal/config"
	"github.com/tunewell/finetune-go/internal/telemetry"
	"github.com/tunewell/finetune-go/pkg/finetune"
)

const usage = `usage: finetunectl [-config file] <command> [arguments]

commands:
  list                  list fine-tune jobs
  create <file-id>      create a fine-tune job from an uploaded file
  get <ft-id>           show one fine-tune job
  cancel <ft-id>        cancel a fine-tune job
  events <ft-id>        list status events for a job
  files                 list uploaded files
  upload <path>         upload a JSONL training file
  prepare <path>        validate a JSONL file and estimate tokens
  models                list available models
`

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	configPath := flag.String("config", "", "path to YAML config file")
	trace := flag.Bool("trace", false, "emit OpenTelemetry traces to stdout")
	model := flag.String("model", "curie", "base model for create/prepare")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	if *trace {
		shutdown, err := telemetry.InitTracer("finetunectl", logger)
		if err != nil {
			log.Fatalf("Failed to initialize tracer: %v", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
			}
		}()
	}

	opts := []finetune.Option{finetune.WithBaseURL(cfg.API.Base)}
	if cfg.Organization != "" {
		opts = append(opts, finetune.WithOrganization(cfg.Organization))
	}
	if *trace {
		opts = append(opts, finetune.WithTracing())
	}
	client := finetune.New(cfg.API.Key, opts...)

	cmd, args := flag.Arg(0), flag.Args()[1:]
	if err := run(ctx, client, cmd, args, *model); err != nil {
		fmt.Fprintf(os.Stderr, "finetunectl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, client *finetune.Client, cmd string, args []string, model string) error {
	switch cmd {
	case "list":
		return runList(ctx, client)
	case "create":
		if len(args) != 1 {
			return fmt.Errorf("create requires a training file ID")
		}
		return runCreate(ctx, client, args[0], model)
	case "get":
		if len(args) != 1 {
			return fmt.Errorf("get requires a fine-tune ID")
		}
		return runGet(ctx, client, args[0])
	case "cancel":
		if len(args) != 1 {
			return fmt.Errorf("cancel requires a fine-tune ID")
		}
		return runCancel(ctx, client, args[0])
	case "events":
		if len(args) != 1 {
			return fmt.Errorf("events requires a fine-tune ID")
		}
		return runEvents(ctx, client, args[0])
	case "files":
		return runFiles(ctx, client)
	case "upload":
		if len(args) != 1 {
			return fmt.Errorf("upload requires a file path")
		}
		return runUpload(ctx, client, args[0])
	case "prepare":
		if len(args) != 1 {
			return fmt.Errorf("prepare requires a file path")
		}
		return runPrepare(args[0], model)
	case "models":
		return runModels(ctx, client)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
