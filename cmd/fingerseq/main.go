// Command fingerseq builds persistent sequences from line-oriented input and
// inspects, queries and benchmarks them.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"

	"github.com/dshills/fingerseq/internal/config"
	"github.com/dshills/fingerseq/internal/config/loader"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdin, os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(in io.Reader, out, errOut io.Writer) *cli.App {
	app := &cli.App{
		Name:      "fingerseq",
		Usage:     "persistent finger tree sequences from the command line",
		Version:   versioninfo.Short(),
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		Metadata:  map[string]any{},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a TOML or YAML config file",
				EnvVars: []string{loader.EnvPrefix + "CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level: debug, info, warn or error",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			cmdStats,
			cmdGet,
			cmdIter,
			cmdSplit,
			cmdConcat,
			cmdDump,
			cmdBench,
			cmdWatch,
		},
	}
	return app
}

// setup loads the configuration and installs the default logger.
func setup(cctx *cli.Context) error {
	cfg, err := config.Load(loader.DefaultFS(), cctx.String("config"), loader.NewEnvLoader(loader.EnvPrefix))
	if err != nil {
		return err
	}
	if cctx.IsSet("log-level") {
		cfg.Log.Level = cctx.String("log-level")
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cctx.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	})))

	cctx.App.Metadata["config"] = cfg
	slog.Debug("configuration loaded", "file", cctx.String("config"), "level", cfg.Log.Level)
	return nil
}

// configFrom returns the configuration installed by setup.
func configFrom(cctx *cli.Context) config.Config {
	if cfg, ok := cctx.App.Metadata["config"].(config.Config); ok {
		return cfg
	}
	return config.Default()
}
