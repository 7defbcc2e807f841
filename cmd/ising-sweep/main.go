// Command ising-sweep runs Metropolis temperature sweeps of the 2D Ising
// model and reports binned means with standard errors.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cheggaaa/pb/v3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ising-mc/internal/plot"
	"ising-mc/internal/report"
	"ising-mc/internal/sweep"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type options struct {
	cfg sweep.Config

	sizes     string
	statistic string
	policy    string
	overrides kvList

	csvPath  string
	tsvPath  string
	xlsxPath string
	plotPath string
	ascii    bool
	quiet    bool
	verbose  bool
}

func (o *options) bind(fs *flag.FlagSet) {
	c := &o.cfg
	fs.StringVar(&o.sizes, "sizes", "10", "comma separated lattice sizes L")
	fs.Float64Var(&c.TStart, "tstart", c.TStart, "first temperature")
	fs.Float64Var(&c.TStop, "tstop", c.TStop, "temperature upper bound (exclusive)")
	fs.Float64Var(&c.TStep, "tstep", c.TStep, "temperature step")
	fs.IntVar(&c.Sweeps, "sweeps", c.Sweeps, "measurement steps per bin (N_sweeps)")
	fs.IntVar(&c.Equilibration, "eq", c.Equilibration, "equilibration steps per bin (N_eq)")
	fs.IntVar(&c.FlipInterval, "flips", c.FlipInterval, "steps between samples (N_flips)")
	fs.IntVar(&c.Bins, "bins", c.Bins, "independent bins per temperature (N_bins)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "base seed; every job derives its own stream")
	fs.IntVar(&c.Workers, "workers", c.Workers, "parallel jobs")
	fs.StringVar(&o.statistic, "stat", string(c.Statistic), "statistic: "+statNames())
	fs.StringVar(&o.policy, "policy", string(c.Policy), "lattice reuse: carry, temperature, bin")
	fs.Var(&o.overrides, "set", "parameter override in key=value form (repeatable)")
	fs.StringVar(&o.csvPath, "csv", "", "write points to this CSV file")
	fs.StringVar(&o.tsvPath, "tsv", "", "write points to this TSV file")
	fs.StringVar(&o.xlsxPath, "xlsx", "", "write an Excel workbook")
	fs.StringVar(&o.plotPath, "plot", "", "save an error-bar chart (.png, .svg, .pdf)")
	fs.BoolVar(&o.ascii, "ascii", false, "print a terminal chart")
	fs.BoolVar(&o.quiet, "quiet", false, "no progress bar, warnings only")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
}

func statNames() string {
	names := make([]string, 0, len(sweep.Statistics()))
	for _, s := range sweep.Statistics() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	o := &options{cfg: sweep.DefaultConfig()}
	fs := flag.NewFlagSet("ising-sweep", flag.ContinueOnError)
	fs.SetOutput(stderr)
	o.bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	sizes, err := sweep.ParseSizes(o.sizes)
	if err != nil {
		return nil, err
	}
	o.cfg.Sizes = sizes
	o.cfg.Statistic = sweep.Statistic(o.statistic)
	o.cfg.Policy = sweep.LatticePolicy(o.policy)

	if len(o.overrides) > 0 {
		kv := make(map[string]string, len(o.overrides))
		for _, entry := range o.overrides {
			key, value, ok := strings.Cut(entry, "=")
			if !ok {
				return nil, errors.Errorf("invalid override %q (want key=value)", entry)
			}
			kv[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
		if o.cfg, err = o.cfg.FromMap(kv); err != nil {
			return nil, err
		}
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func newLogger(o *options) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	zc.DisableStacktrace = true
	switch {
	case o.quiet:
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case o.verbose:
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	default:
		zc.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return zc.Build()
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("ising-sweep: ")

	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("%+v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mainWithErr(ctx, opts, os.Stdout, os.Stderr); err != nil {
		stop()
		log.Fatalf("%+v", err)
	}
}

func mainWithErr(ctx context.Context, o *options, stdout, stderr io.Writer) error {
	logger, err := newLogger(o)
	if err != nil {
		return errors.Wrap(err, "build logger")
	}
	defer logger.Sync()

	runner := sweep.NewRunner(o.cfg, logger)
	if !o.quiet {
		bar := pb.New(o.cfg.TotalBins())
		bar.SetWriter(stderr)
		bar.Start()
		defer bar.Finish()
		runner.OnBin = func() { bar.Increment() }
	}

	res, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	for _, c := range res.Curves {
		for _, p := range c.Points {
			if err := report.WritePoint(stdout, c.Size, p); err != nil {
				return errors.Wrap(err, "write point")
			}
		}
	}
	fmt.Fprintln(stdout)
	if err := report.WriteTable(stdout, res); err != nil {
		return errors.Wrap(err, "write table")
	}
	if err := report.WriteSummary(stdout, res); err != nil {
		return errors.Wrap(err, "write summary")
	}
	if o.ascii {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, report.ASCIIPreview(res, 60, 12))
	}

	if err := report.SaveCSV(o.csvPath, res); err != nil {
		return err
	}
	if err := report.SaveTSV(o.tsvPath, res); err != nil {
		return err
	}
	if o.xlsxPath != "" {
		if err := report.SaveXLSX(o.xlsxPath, o.cfg, res); err != nil {
			return err
		}
		logger.Info("workbook saved", zap.String("path", o.xlsxPath))
	}
	if o.plotPath != "" {
		if err := plot.Save(o.plotPath, res, plot.DefaultOptions()); err != nil {
			return err
		}
		logger.Info("chart saved", zap.String("path", o.plotPath))
	}
	return nil
}
