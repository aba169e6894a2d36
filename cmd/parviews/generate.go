package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/parviews/internal/config"
	"github.com/Faultbox/parviews/internal/logger"
	"github.com/Faultbox/parviews/internal/output"
	"github.com/Faultbox/parviews/internal/pipeline"
	"github.com/Faultbox/parviews/internal/scene"
	"github.com/Faultbox/parviews/internal/view"
	"github.com/Faultbox/parviews/pkg/formats"
)

func cmdGenerate(args []string, stdout, stderr io.Writer) int {
	return generate("generate", args, true, stdout, stderr)
}

func cmdViews(args []string, stdout, stderr io.Writer) int {
	return generate("views", args, false, stdout, stderr)
}

func generate(name string, args []string, writeFiles bool, stdout, stderr io.Writer) int {
	cfg, path, ok := setup(name, args, stderr)
	if !ok {
		return 1
	}
	defer logger.Sync()

	sc, err := loadScene(path, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := pipeline.Run(ctx, sc.Quads, pipeline.Options{
		Projection:  cfg.ProjectionOptions(),
		Naming:      cfg.Naming(),
		MaterialLib: output.MaterialLib(cfg.Output.BaseName),
		Workers:     cfg.Projection.Workers,
		Check:       cfg.Projection.Check,
		Logger:      logger.Log,
	})
	if err != nil {
		if errors.Is(err, pipeline.ErrNoValidQuads) {
			fmt.Fprintf(stderr, "Error: all %d quads are degenerate\n", len(sc.Quads))
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}

	up := cfg.Up()
	fmt.Fprintf(stdout, "Scene up direction: [%s, %s, %s]\n", view.Number(up.X), view.Number(up.Y), view.Number(up.Z))
	for _, v := range res.Views {
		fmt.Fprintln(stdout, v)
	}
	fmt.Fprintf(stderr, "Total view count: %d, Total quad count: %d\n", res.Processed, len(sc.Quads))

	if !writeFiles {
		return 0
	}

	files, err := output.Write(cfg.Output.Dir, cfg.Output.BaseName, res.Document)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	logger.Info("mesh written",
		zap.String("obj", files.OBJ),
		zap.String("mtl", files.MTL),
		zap.Int("faces", len(res.Document.Faces)))
	return 0
}

// setup parses flags, loads and validates the config and starts logging.
// It returns the scene path argument.
func setup(name string, args []string, stderr io.Writer) (*config.Config, string, bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := config.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, "", false
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(stderr, "Usage: parviews %s [options] <scene.rad>\n", name)
		return nil, "", false
	}

	cfg, err := loadConfig(flags, stderr)
	if err != nil {
		return nil, "", false
	}
	opts := logger.Options{Level: cfg.Logging.Level, File: cfg.Logging.LogFile, Console: stderr}
	if stderr == os.Stderr {
		opts.Console = nil
	}
	if err := logger.Init(opts); err != nil {
		fmt.Fprintf(stderr, "Error: initializing logger: %v\n", err)
		return nil, "", false
	}
	return cfg, fs.Arg(0), true
}

func loadConfig(flags *config.Flags, stderr io.Writer) (*config.Config, error) {
	cfg, err := config.Load(flags)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		for _, e := range multierr.Errors(err) {
			fmt.Fprintf(stderr, "Error: %v\n", e)
		}
		return nil, err
	}
	return cfg, nil
}

func loadScene(path string, cfg *config.Config) (*scene.Scene, error) {
	rad, err := formats.ParseRADFile(path, cfg.Scene.InputEncoding)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for _, c := range rad.Commands {
		logger.Warn("skipping inline command", zap.Int("line", c.Line), zap.String("command", c.Command))
	}

	sc := scene.Extract(rad)
	for _, p := range sc.UnpairedTriangles {
		logger.Warn("skipping triangle without a partner", zap.String("id", p.ID), zap.Int("line", p.Line))
	}
	for _, p := range sc.Unsupported {
		logger.Warn("skipping polygon", zap.String("id", p.ID), zap.Int("line", p.Line), zap.Int("vertices", p.Vertices))
	}
	logger.Debug("scene loaded",
		zap.String("path", path),
		zap.Int("primitives", len(rad.Primitives)),
		zap.Int("quads", len(sc.Quads)),
		zap.Int("merged", sc.Merged))
	return sc, nil
}
