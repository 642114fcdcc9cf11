package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"robosweep/internal/backtest"
	"robosweep/internal/domain"
	"robosweep/internal/strategy"
)

// SeriesProvider resolves an instrument symbol to its price series. The
// orchestrator calls it once per symbol, before the parameter loop.
type SeriesProvider interface {
	Series(ctx context.Context, symbol string) (*domain.Series, error)
}

// Record is one flattened backtest outcome, owned by a single
// (strategy, parameter set, instrument) combination.
type Record struct {
	Strategy     string
	Symbol       string
	Params       ParamSet
	ParamsDesc   string
	FinalEquity  float64
	TotalReturn  float64
	SharpeRatio  float64
	WinRate      float64
	MaxDrawdown  float64
	TotalTrades  int
	OpenPosition bool
}

// Skip records one combination that was excluded from the results, with the
// reason it failed. Symbol or ParamsDesc may be empty when a whole family or
// instrument was skipped.
type Skip struct {
	Strategy   string
	Symbol     string
	ParamsDesc string
	Reason     string
}

// Outcome is the complete contract of a sweep: the ordered records plus the
// skipped-combination reasons. No error escapes Sweep.
type Outcome struct {
	Records []Record
	Skipped []Skip
}

// Config holds the simulation parameters shared by every combination.
type Config struct {
	InitialCapital float64
	Commission     float64
	BarsPerYear    float64
	Workers        int // concurrent backtest workers; <=1 runs synchronously
	ProgressEvery  int // log progress every N completed combinations; 0 disables
}

// Sweeper iterates (strategy family x parameter set x instrument), invoking
// the strategy evaluator and backtester for each combination.
type Sweeper struct {
	registry *strategy.Registry
	provider SeriesProvider
	tester   *backtest.Backtester
	cfg      Config
	log      *slog.Logger
}

// New creates a Sweeper. The backtest configuration is validated here so that
// Sweep itself can never fail.
func New(registry *strategy.Registry, provider SeriesProvider, cfg Config, log *slog.Logger) (*Sweeper, error) {
	tester, err := backtest.New(cfg.InitialCapital, cfg.Commission, cfg.BarsPerYear)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Sweeper{
		registry: registry,
		provider: provider,
		tester:   tester,
		cfg:      cfg,
		log:      log.With("component", "sweep"),
	}, nil
}

// job is one (family, params, symbol) combination with its series resolved.
type job struct {
	family     string
	params     ParamSet
	paramsDesc string
	symbol     string
	series     *domain.Series
}

// slot holds the outcome of one job. Exactly one of record/skip is set once
// the job has run.
type slot struct {
	record *Record
	skip   *Skip
}

// Sweep runs every combination of the given families, symbols, and parameter
// ranges. Failing combinations are recorded as skips; the remaining sweep
// continues. Output order is deterministic: families in the given order, then
// parameter sets in grid order, then symbols in the given order, regardless
// of worker count.
func (s *Sweeper) Sweep(ctx context.Context, families, symbols []string, rangesByFamily map[string]map[string][]float64) *Outcome {
	out := &Outcome{}

	// Resolve each instrument's series once, before the parameter loop.
	seriesBySymbol := make(map[string]*domain.Series, len(symbols))
	for _, symbol := range symbols {
		series, err := s.provider.Series(ctx, symbol)
		if err != nil {
			s.log.Warn("skipping instrument", "symbol", symbol, "reason", err)
			out.Skipped = append(out.Skipped, Skip{Symbol: symbol, Reason: err.Error()})
			continue
		}
		seriesBySymbol[symbol] = series
	}

	// Expand each family's grid once; it is shared by all instruments.
	var jobs []job
	for _, family := range families {
		order, ok := s.registry.ParamNames(family)
		if !ok {
			s.log.Warn("skipping family", "strategy", family, "reason", "not registered")
			out.Skipped = append(out.Skipped, Skip{Strategy: family, Reason: fmt.Sprintf("%v: %q", strategy.ErrUnknownStrategy, family)})
			continue
		}
		sets, err := ExpandGrid(rangesByFamily[family], order)
		if err != nil {
			s.log.Warn("skipping family", "strategy", family, "reason", err)
			out.Skipped = append(out.Skipped, Skip{Strategy: family, Reason: err.Error()})
			continue
		}
		for _, set := range sets {
			desc := set.Describe(order)
			for _, symbol := range symbols {
				series, ok := seriesBySymbol[symbol]
				if !ok {
					continue // instrument already skipped above
				}
				jobs = append(jobs, job{
					family:     family,
					params:     set,
					paramsDesc: desc,
					symbol:     symbol,
					series:     series,
				})
			}
		}
	}

	s.log.Info("sweep starting",
		"families", len(families),
		"symbols", len(seriesBySymbol),
		"combinations", len(jobs),
	)

	slots := make([]slot, len(jobs))
	s.runJobs(ctx, jobs, slots)

	for i := range slots {
		switch {
		case slots[i].record != nil:
			out.Records = append(out.Records, *slots[i].record)
		case slots[i].skip != nil:
			out.Skipped = append(out.Skipped, *slots[i].skip)
		}
		// A slot left empty means the context was cancelled before the job
		// ran; completed records remain valid.
	}

	s.log.Info("sweep finished", "records", len(out.Records), "skipped", len(out.Skipped))
	return out
}

// runJobs executes jobs over a bounded worker pool. Each worker writes only
// its own job's slot, so no locking is needed beyond the WaitGroup.
func (s *Sweeper) runJobs(ctx context.Context, jobs []job, slots []slot) {
	workers := s.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	jobCh := make(chan int, len(jobs))
	for i := range jobs {
		jobCh <- i
	}
	close(jobCh)

	var (
		wg   sync.WaitGroup
		done atomic.Int64
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobCh {
				if ctx.Err() != nil {
					return
				}
				slots[idx] = s.runOne(&jobs[idx])

				n := done.Add(1)
				if s.cfg.ProgressEvery > 0 && n%int64(s.cfg.ProgressEvery) == 0 {
					s.log.Info("sweep progress", "completed", n, "total", len(jobs))
				}
			}
		}()
	}
	wg.Wait()
}

// runOne validates, evaluates, and backtests a single combination.
func (s *Sweeper) runOne(j *job) slot {
	skip := func(err error) slot {
		return slot{skip: &Skip{
			Strategy:   j.family,
			Symbol:     j.symbol,
			ParamsDesc: j.paramsDesc,
			Reason:     err.Error(),
		}}
	}

	strat, err := s.registry.Create(j.family, j.params)
	if err != nil {
		return skip(err)
	}

	signals := strat.Evaluate(j.series)
	res, err := s.tester.Run(j.series, signals)
	if err != nil {
		return skip(err)
	}

	return slot{record: &Record{
		Strategy:     j.family,
		Symbol:       j.symbol,
		Params:       j.params,
		ParamsDesc:   j.paramsDesc,
		FinalEquity:  res.FinalEquity,
		TotalReturn:  res.TotalReturn,
		SharpeRatio:  res.SharpeRatio,
		WinRate:      res.WinRate,
		MaxDrawdown:  res.MaxDrawdown,
		TotalTrades:  res.TotalTrades,
		OpenPosition: res.OpenPosition,
	}}
}
