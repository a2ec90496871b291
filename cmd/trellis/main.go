package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/sensing-garden/trellis/internal/app"
	"github.com/sensing-garden/trellis/internal/config"
	"github.com/sensing-garden/trellis/internal/garden"
)

const usage = `trellis - Sensing Garden client

Usage:
  trellis [flags]            interactive dashboard
  trellis submit [flags]     submit a classification from an image file
  trellis env [flags]        submit an environment reading
  trellis device <add|rm|ls> manage devices
  trellis model <create|ls>  manage models

Run 'trellis <command> -h' for command flags.`

func main() {
	os.Exit(run())
}

func run() int {
	// Credentials may live in a .env file next to the working directory,
	// matching the rest of the Sensing Garden tooling.
	_ = godotenv.Load()

	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	args := os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		switch args[0] {
		case "submit":
			return runSubmit(args[1:])
		case "env":
			return runEnv(args[1:])
		case "device":
			return runDevice(args[1:])
		case "model":
			return runModel(args[1:])
		case "help", "-h", "--help":
			fmt.Println(usage)
			return 0
		default:
			fmt.Fprintf(os.Stderr, "trellis: unknown command %q\n\n%s\n", args[0], usage)
			return 2
		}
	}
	return runDashboard(args)
}

func runDashboard(args []string) int {
	fs := flag.NewFlagSet("trellis", flag.ExitOnError)
	configPath := fs.String("config", "", "override trellis config path (optional)")
	pollSeconds := fs.Int("poll", 0, "refresh interval in seconds (optional)")
	_ = fs.Parse(args)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "trellis: %v\n", err)
		return 1
	}
	return 0
}

// newClient loads config and builds the API client for one-shot commands.
func newClient(configPath string) (config.Config, *garden.Client, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.RequireCredentials(); err != nil {
		return config.Config{}, nil, err
	}
	client, err := garden.NewClient(cfg.BaseURL, cfg.APIKey)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("init garden client: %w", err)
	}
	return cfg, client, nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logrus.WithError(err).Error("encode output")
		return
	}
	fmt.Println(string(out))
}

func fatal(err error) int {
	fmt.Fprintf(os.Stderr, "trellis: %v\n", err)
	return 1
}
