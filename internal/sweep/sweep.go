package sweep

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"ising-mc/internal/sims/ising"
	"ising-mc/pkg/rng"
)

// Point is the aggregated statistic at one temperature.
type Point struct {
	T      float64
	Mean   float64
	StdErr float64
	// LastBin is the scalar from the final bin, kept for the per-temperature
	// report line.
	LastBin float64
	Bins    []float64
}

// Curve holds the points of one lattice size in temperature order.
type Curve struct {
	Size   int
	Points []Point
}

// Result is the outcome of a full sweep.
type Result struct {
	Statistic Statistic
	Policy    LatticePolicy
	Curves    []Curve
	Elapsed   time.Duration
}

// Runner executes a sweep on a pool of workers. Every job owns its lattice and
// a stream split from Seed by job index, so results do not depend on the
// number of workers.
type Runner struct {
	Config Config
	Logger *zap.Logger
	// OnBin, when set, is called once per finished bin from the collecting
	// goroutine.
	OnBin func()
}

// NewRunner returns a Runner for cfg. A nil logger disables logging.
func NewRunner(cfg Config, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{Config: cfg, Logger: logger}
}

// TotalBins returns the number of Metropolis runs the sweep performs.
func (c Config) TotalBins() int {
	return len(c.Sizes) * len(c.Temperatures()) * c.Bins
}

type task struct {
	temp int
	bin  int
}

// job is the unit of parallel work: a sequence of bins sharing one lattice.
type job struct {
	id    int
	size  int
	tasks []task
}

func (c Config) plan(temps int) []job {
	var jobs []job
	add := func(size int, tasks []task) {
		jobs = append(jobs, job{id: len(jobs), size: size, tasks: tasks})
	}
	for si := range c.Sizes {
		switch c.Policy {
		case CarryLattice:
			tasks := make([]task, 0, temps*c.Bins)
			for ti := 0; ti < temps; ti++ {
				for b := 0; b < c.Bins; b++ {
					tasks = append(tasks, task{temp: ti, bin: b})
				}
			}
			add(si, tasks)
		case PerBin:
			for ti := 0; ti < temps; ti++ {
				for b := 0; b < c.Bins; b++ {
					add(si, []task{{temp: ti, bin: b}})
				}
			}
		default:
			for ti := 0; ti < temps; ti++ {
				tasks := make([]task, c.Bins)
				for b := range tasks {
					tasks[b] = task{temp: ti, bin: b}
				}
				add(si, tasks)
			}
		}
	}
	return jobs
}

type binResult struct {
	size  int
	temp  int
	bin   int
	value float64
	err   error
}

// Run validates the configuration, executes every bin and aggregates the
// results. Cancelling ctx stops the sweep between bins.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	cfg := r.Config
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid sweep configuration")
	}
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}

	temps := cfg.Temperatures()
	jobs := cfg.plan(len(temps))
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	log.Info("sweep starting",
		zap.Ints("sizes", cfg.Sizes),
		zap.Int("temperatures", len(temps)),
		zap.Int("bins", cfg.Bins),
		zap.Int("jobs", len(jobs)),
		zap.Int("workers", workers),
		zap.String("statistic", string(cfg.Statistic)),
		zap.String("policy", string(cfg.Policy)),
	)

	values := make([][][]float64, len(cfg.Sizes))
	for si := range values {
		values[si] = make([][]float64, len(temps))
		for ti := range values[si] {
			values[si][ti] = make([]float64, cfg.Bins)
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	base := rng.New(cfg.Seed)
	jobCh := make(chan job)
	results := make(chan binResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				r.runJob(runCtx, base, temps, j, results, log)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobCh)
		for _, j := range jobs {
			select {
			case jobCh <- j:
			case <-runCtx.Done():
				return
			}
		}
	}()

	start := time.Now()
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
				cancel()
			}
			continue
		}
		values[res.size][res.temp][res.bin] = res.value
		if r.OnBin != nil {
			r.OnBin()
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "sweep interrupted")
	}

	out := &Result{
		Statistic: cfg.Statistic,
		Policy:    cfg.Policy,
		Curves:    make([]Curve, len(cfg.Sizes)),
		Elapsed:   time.Since(start),
	}
	for si, l := range cfg.Sizes {
		curve := Curve{Size: l, Points: make([]Point, len(temps))}
		for ti, t := range temps {
			bins := values[si][ti]
			mean, stderr := Aggregate(bins)
			curve.Points[ti] = Point{T: t, Mean: mean, StdErr: stderr, LastBin: bins[len(bins)-1], Bins: bins}
			log.Info("point",
				zap.Int("L", l),
				zap.Float64("T", t),
				zap.Float64("last", bins[len(bins)-1]),
				zap.Float64("mean", mean),
				zap.Float64("stderr", stderr),
			)
		}
		out.Curves[si] = curve
	}
	log.Info("sweep finished", zap.Duration("elapsed", out.Elapsed))
	return out, nil
}

// runJob executes the bins of j in order on one lattice. base is only split,
// never drawn from, so it is safe to share between workers.
func (r *Runner) runJob(ctx context.Context, base *rng.Stream, temps []float64, j job, out chan<- binResult, log *zap.Logger) {
	cfg := r.Config
	l := cfg.Sizes[j.size]
	stream := base.Split(uint64(j.id))

	lat, err := ising.PrepareSystem(l, stream)
	if err != nil {
		out <- binResult{err: errors.Wrapf(err, "job %d", j.id)}
		return
	}
	log.Debug("job started", zap.Int("job", j.id), zap.Int("L", l), zap.Int("bins", len(j.tasks)))

	obs := cfg.Statistic.Observable()
	for _, tk := range j.tasks {
		if ctx.Err() != nil {
			return
		}
		t := temps[tk.temp]
		series, err := ising.MetropolisLoop(lat, cfg.RunParams(t), obs, stream)
		if err != nil {
			out <- binResult{err: errors.Wrapf(err, "L=%d T=%.4f bin=%d", l, t, tk.bin)}
			return
		}
		out <- binResult{
			size:  j.size,
			temp:  tk.temp,
			bin:   tk.bin,
			value: cfg.Statistic.Reduce(series, t, l),
		}
	}
	log.Debug("job finished", zap.Int("job", j.id))
}
