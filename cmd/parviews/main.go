// parviews derives a parallel-projection view for every quad of a Radiance
// scene and writes a textured OBJ/MTL pair that maps each quad onto the
// picture rendered from its view.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "generate", "gen":
		return cmdGenerate(args, stdout, stderr)
	case "views":
		return cmdViews(args, stdout, stderr)
	case "info":
		return cmdInfo(args, stdout, stderr)
	case "config":
		return cmdConfig(args, stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `parviews - parallel projection views for planar scene quads

Usage:
  parviews <command> [options] <args>

Commands:
  generate [options] <scene.rad>   Print views and write <base>.obj / <base>.mtl
  views [options] <scene.rad>      Print views only
  info [options] <scene.rad>       Show scene statistics
  config init [options] [path]     Write a config file (default: user config dir)
  config show [options]            Print the effective configuration

Options:
  -config <file>     Config file (default: ./parviews.yaml, then user config dir)
  -up x,y,z          Scene up direction (default 0,0,1)
  -offset <d>        View offset in front of each quad (default 0.1)
  -padding <f>       Fractional margin around each quad
  -prefix <name>     View, material and texture name prefix (default scene)
  -base <name>       Base name of the mesh files (default scene)
  -out <dir>         Output directory
  -ext <ext>         Rendered picture extension (default hdr)
  -encoding <cs>     Scene file charset (default utf-8)
  -workers <n>       Frame workers, 0 = one per CPU
  -check             Verify each frame reproduces its quad before emitting it
  -debug             Debug logging
  -log-file <file>   Also log to a rotating file

Examples:
  parviews generate room.rad
  parviews generate -prefix proj_ -base room -out build room.rad
  parviews views -check -up 0,1,0 room.rad`)
}
