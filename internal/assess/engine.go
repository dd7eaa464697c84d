// Package assess runs the full heat loss pipeline over a batch of buildings: fabric and
// ventilation losses, heat loss parameter and annual heating demand.
package assess

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"rc-building-model/internal/demand"
	"rc-building-model/internal/fabric"
	"rc-building-model/internal/logging"
	"rc-building-model/internal/metrics"
	"rc-building-model/internal/model"
	"rc-building-model/internal/ventilation"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize is the number of rows evaluated by one worker at a time.
const DefaultChunkSize = 4096

type Options struct {
	// ChunkSize splits the batch into row ranges; <= 0 uses DefaultChunkSize.
	ChunkSize int
	// Workers bounds concurrent chunks; <= 0 uses GOMAXPROCS.
	Workers int
	Logger  *zap.Logger
}

type Engine struct {
	params    Params
	chunkSize int
	workers   int
	log       *zap.Logger
}

func New(p Params, opts Options) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		params:    p,
		chunkSize: opts.ChunkSize,
		workers:   opts.Workers,
		log:       logging.OrNop(opts.Logger),
	}
	if e.chunkSize <= 0 {
		e.chunkSize = DefaultChunkSize
	}
	if e.workers <= 0 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	return e, nil
}

func (e *Engine) Params() Params { return e.params }

// Validate checks the whole batch up front so no chunk can fail half way through a run.
func (e *Engine) Validate(b model.Buildings) error {
	if err := b.CheckAligned(); err != nil {
		return err
	}
	var errs model.Errors
	errs.Add(fabric.CheckEnvelope(b.Envelope))
	errs.Add(ventilation.Validate(b.Ventilation, e.params.Ventilation))
	errs.Add(fabric.CheckFloorArea(b.TotalFloorArea))
	return errs.Err()
}

// Run evaluates a batch. Rows are split into chunks that run concurrently; the output
// columns and ledger are in input order regardless of which chunk finishes first.
func (e *Engine) Run(ctx context.Context, b model.Buildings) (res *Result, err error) {
	start := time.Now()
	n := b.Len()
	chunks := 0
	defer func() {
		metrics.RecordAssessment(n, chunks, time.Since(start), err)
	}()

	if err := e.Validate(b); err != nil {
		e.log.Info("batch rejected", zap.Int("rows", n), zap.Error(err))
		return nil, err
	}
	if e.params.Ventilation.LenientStructureType {
		if rows := ventilation.UnrecognisedStructureRows(b.Ventilation.StructureType); len(rows) > 0 {
			e.log.Warn("unrecognised structure types treated as unknown",
				zap.Int("count", len(rows)), zap.Ints("rows", rows))
		}
	}

	var bounds [][2]int
	for lo := 0; lo < n; lo += e.chunkSize {
		bounds = append(bounds, [2]int{lo, min(lo+e.chunkSize, n)})
	}
	chunks = len(bounds)

	parts := make([]Columns, len(bounds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for k, bnd := range bounds {
		k, bnd := k, bnd
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			part, err := evaluate(b.Slice(bnd[0], bnd[1]), e.params)
			if err != nil {
				model.ShiftRows(err, bnd[0])
				return fmt.Errorf("rows %d-%d: %w", bnd[0], bnd[1]-1, err)
			}
			parts[k] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.log.Error("assessment failed", zap.Int("rows", n), zap.Error(err))
		return nil, err
	}

	var cols Columns
	for _, part := range parts {
		cols.append(part)
	}
	res = &Result{
		Columns: cols,
		Rows:    buildRows(b.ID, cols),
		Summary: summarize(cols, chunks),
	}
	e.log.Info("assessment complete",
		zap.Int("rows", n),
		zap.Int("chunks", chunks),
		zap.Duration("duration", time.Since(start)),
	)
	return res, nil
}

// evaluate runs every calculator over one chunk. Fabric and ventilation have no data
// dependency; their sum feeds both the heat loss parameter and the annual demand.
func evaluate(b model.Buildings, p Params) (Columns, error) {
	fabricHLC, err := fabric.HeatLossCoefficient(b.Envelope, p.Fabric)
	if err != nil {
		return Columns{}, fmt.Errorf("fabric: %w", err)
	}
	vent, err := ventilation.Calculate(b.Ventilation, p.Ventilation)
	if err != nil {
		return Columns{}, fmt.Errorf("ventilation: %w", err)
	}

	hlc := make([]float64, len(fabricHLC))
	for i := range hlc {
		hlc[i] = fabricHLC[i] + vent.HeatLossCoefficient[i]
	}
	hlp, err := fabric.HeatLossParameter(fabricHLC, vent.HeatLossCoefficient, b.TotalFloorArea)
	if err != nil {
		return Columns{}, err
	}
	annual, err := demand.AnnualHeatDemand(hlc, p.Demand)
	if err != nil {
		return Columns{}, fmt.Errorf("demand: %w", err)
	}

	return Columns{
		FabricHeatLossCoefficient:      fabricHLC,
		InfiltrationDueToOpenings:      vent.DueToOpenings,
		InfiltrationDueToStructure:     vent.DueToStructure,
		InfiltrationRate:               vent.Rate,
		EffectiveAirChangeRate:         vent.EffectiveAirChangeRate,
		VentilationHeatLossCoefficient: vent.HeatLossCoefficient,
		HeatLossCoefficient:            hlc,
		HeatLossParameter:              hlp,
		AnnualHeatDemand:               annual,
	}, nil
}
