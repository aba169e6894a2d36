package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/Faultbox/parviews/internal/logger"
	"github.com/Faultbox/parviews/internal/scene"
	"github.com/Faultbox/parviews/pkg/formats"
)

func cmdInfo(args []string, stdout, stderr io.Writer) int {
	cfg, path, ok := setup("info", args, stderr)
	if !ok {
		return 1
	}
	defer logger.Sync()

	rad, err := formats.ParseRADFile(path, cfg.Scene.InputEncoding)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s: %v\n", path, err)
		return 1
	}
	sc := scene.Extract(rad)

	fmt.Fprintf(stdout, "Scene:       %s\n", path)
	fmt.Fprintf(stdout, "Primitives:  %d\n", len(rad.Primitives))
	fmt.Fprintf(stdout, "Materials:   %d\n", sc.Materials)
	fmt.Fprintf(stdout, "Quads:       %d (%d from triangle pairs)\n", len(sc.Quads), sc.Merged)
	fmt.Fprintf(stdout, "Unpaired:    %d triangles\n", len(sc.UnpairedTriangles))
	fmt.Fprintf(stdout, "Unsupported: %d polygons\n", len(sc.Unsupported))
	fmt.Fprintf(stdout, "Commands:    %d\n", len(rad.Commands))
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Primitives by type:")

	type typeStat struct {
		name  string
		count int
	}
	var stats []typeStat
	for name, count := range rad.CountByType() {
		stats = append(stats, typeStat{name, count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].count != stats[j].count {
			return stats[i].count > stats[j].count
		}
		return stats[i].name < stats[j].name
	})

	for _, s := range stats {
		fmt.Fprintf(stdout, "  %-10s %d\n", s.name, s.count)
	}
	return 0
}
