// Package pipeline turns a sequence of quads into view lines and a mesh
// document.
package pipeline

import (
	"context"
	"errors"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/parviews/internal/logger"
	"github.com/Faultbox/parviews/internal/mesh"
	"github.com/Faultbox/parviews/internal/projection"
	"github.com/Faultbox/parviews/internal/view"
)

// ErrNoValidQuads is returned when every input quad is degenerate.
var ErrNoValidQuads = errors.New("pipeline: no valid quads")

// Options configures a run.
type Options struct {
	Projection  projection.Options
	Naming      view.Naming
	MaterialLib string
	Workers     int         // 0 = one per CPU, 1 = sequential
	Check       bool        // verify every frame with projection.Check
	Logger      *zap.Logger // nil = global logger
}

// Result holds everything a run produced.
type Result struct {
	Views     []string
	Document  mesh.Document
	Skipped   []*projection.DegenerateGeometryError
	Processed int
}

type outcome struct {
	frame projection.Frame
	uv    projection.UVSet
	err   error
}

// Run processes quads in order. Degenerate quads are logged and skipped;
// the rest keep their index, so view names do not shift.
func Run(ctx context.Context, quads []projection.Quad, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = logger.L()
	}

	outcomes, err := compute(ctx, quads, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	asm := mesh.NewAssembler(opts.MaterialLib)
	for i, q := range quads {
		o := outcomes[i]
		if o.err != nil {
			var dg *projection.DegenerateGeometryError
			if !errors.As(o.err, &dg) {
				return nil, o.err
			}
			log.Warn("skipping degenerate quad",
				logger.Quad(q.Index, q.ID),
				zap.String("reason", dg.Reason),
				zap.Any("vertices", q.Vertices),
				zap.NamedError("cause", dg.Err))
			res.Skipped = append(res.Skipped, dg)
			continue
		}

		if o.frame.UsedFallback {
			log.Debug("up vector parallel to normal, using first edge", logger.Quad(q.Index, q.ID))
		}

		res.Views = append(res.Views, view.Format(o.frame, opts.Naming, q.Index))
		if q.ID == "" {
			q.ID = opts.Naming.Name(q.Index)
		}
		asm.AddQuad(q, o.frame, o.uv, mesh.MaterialBinding{
			Name:    opts.Naming.MaterialName(q.Index),
			Texture: opts.Naming.TextureName(q.Index),
			Source:  q.Material,
		})
		res.Processed++
	}
	res.Document = asm.Document()

	log.Debug("pipeline finished",
		zap.Int("quads", len(quads)),
		zap.Int("views", res.Processed),
		zap.Int("skipped", len(res.Skipped)))

	if len(quads) > 0 && res.Processed == 0 {
		return res, ErrNoValidQuads
	}
	return res, nil
}

// compute derives every frame into an index-addressed slice.
func compute(ctx context.Context, quads []projection.Quad, opts Options) ([]outcome, error) {
	outcomes := make([]outcome, len(quads))

	workers := opts.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	if workers <= 1 {
		for i := range quads {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			outcomes[i] = derive(quads[i], opts)
		}
		return outcomes, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range quads {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = derive(quads[i], opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func derive(q projection.Quad, opts Options) outcome {
	f, uv, err := projection.Process(q, opts.Projection)
	if err == nil && opts.Check {
		err = projection.Check(q, f, uv, projection.CheckTolerance)
	}
	return outcome{frame: f, uv: uv, err: err}
}
