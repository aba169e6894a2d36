package main

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/parviews/internal/config"
)

func cmdConfig(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, "Usage: parviews config <init|show> [options]")
		return 1
	}

	fs := flag.NewFlagSet("config "+args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := config.BindFlags(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return 1
	}

	cfg, err := loadConfig(flags, stderr)
	if err != nil {
		return 1
	}

	switch args[0] {
	case "init":
		if fs.NArg() > 0 {
			err = cfg.SaveTo(fs.Arg(0))
		} else {
			err = cfg.Save()
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: saving config: %v\n", err)
			return 1
		}
		path := fs.Arg(0)
		if path == "" {
			path = filepath.Join(config.ConfigDir(), "config.yaml")
		}
		fmt.Fprintf(stdout, "Wrote %s\n", path)
	case "show":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		stdout.Write(data)
	default:
		fmt.Fprintf(stderr, "Unknown config command: %s\n", args[0])
		return 1
	}
	return 0
}
