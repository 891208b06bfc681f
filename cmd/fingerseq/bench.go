package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/dshills/fingerseq/internal/engine/fingertree"
	"github.com/dshills/fingerseq/internal/metrics"
)

var cmdBench = &cli.Command{
	Name:  "bench",
	Usage: "time sequence operations at the configured sizes",
	Flags: []cli.Flag{
		&cli.IntSliceFlag{
			Name:  "size",
			Usage: "sequence size to bench, repeatable (default from config)",
		},
		&cli.IntFlag{
			Name:  "rounds",
			Usage: "rounds per size (default from config)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Prometheus textfile to write (default from config)",
		},
		&cli.StringFlag{
			Name:  "run-id",
			Usage: "value of the run label on every metric (default: random UUID)",
		},
	},
	Action: runBench,
}

// benchOps lists the timed operations in report order.
var benchOps = []string{"build", "push_back", "push_front", "get", "iterate", "split", "concat"}

func runBench(cctx *cli.Context) error {
	cfg := configFrom(cctx).Bench
	if cctx.IsSet("size") {
		cfg.Sizes = cctx.IntSlice("size")
	}
	if cctx.IsSet("rounds") {
		cfg.Rounds = cctx.Int("rounds")
	}
	output := configFrom(cctx).Metrics.Output
	if cctx.IsSet("output") {
		output = cctx.String("output")
	}
	runID := cctx.String("run-id")
	if runID == "" {
		runID = uuid.NewString()
	}

	for _, n := range cfg.Sizes {
		if n <= 0 {
			return fmt.Errorf("invalid bench size %d", n)
		}
	}
	if cfg.Rounds < 1 {
		return fmt.Errorf("invalid bench rounds %d", cfg.Rounds)
	}

	rec := metrics.NewRecorder(runID)
	rng := rand.New(rand.NewSource(cfg.Seed))
	totals := make(map[string]map[int]time.Duration)
	for _, op := range benchOps {
		totals[op] = make(map[int]time.Duration)
	}

	slog.Info("starting bench", "run", runID, "sizes", cfg.Sizes, "rounds", cfg.Rounds)
	for _, n := range cfg.Sizes {
		for round := 0; round < cfg.Rounds; round++ {
			if err := benchRound(rec, rng, n, totals); err != nil {
				return err
			}
		}
		slog.Debug("bench size done", "size", n)
	}

	w := tabwriter.NewWriter(cctx.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "op\tsize\tmean\tper element")
	for _, op := range benchOps {
		for _, n := range cfg.Sizes {
			mean := totals[op][n] / time.Duration(cfg.Rounds)
			printer.Fprintf(w, "%s\t%d\t%s\t%s\n", op, n, mean, mean/time.Duration(n))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if output == "" {
		return nil
	}
	if err := rec.WriteTextfile(output); err != nil {
		return err
	}
	slog.Info("wrote metrics", "path", output, "run", runID)
	return nil
}

// benchRound times every operation once on sequences of n elements and
// adds the durations to totals.
func benchRound(rec *metrics.Recorder, rng *rand.Rand, n int, totals map[string]map[int]time.Duration) error {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = rng.Intn(n)
	}

	var t fingertree.Tree[int]
	timed := func(op string, fn func()) {
		totals[op][n] += rec.Time(op, n, fn)
	}

	timed("build", func() { t = fingertree.FromSlice(items) })
	timed("push_back", func() {
		var p fingertree.Tree[int]
		for i := 0; i < n; i++ {
			p = p.PushBack(i)
		}
	})
	timed("push_front", func() {
		var p fingertree.Tree[int]
		for i := 0; i < n; i++ {
			p = p.PushFront(i)
		}
	})
	timed("get", func() {
		for _, i := range idx {
			_, _ = t.Get(i)
		}
	})
	timed("iterate", func() {
		for range t.Values() {
		}
	})

	var left, right fingertree.Tree[int]
	at := rng.Intn(n + 1)
	timed("split", func() { left, right = t.Split(at) })

	var joined fingertree.Tree[int]
	timed("concat", func() { joined = left.Concat(right) })

	if joined.Len() != n {
		return fmt.Errorf("bench: concat produced %d elements, want %d", joined.Len(), n)
	}
	return joined.Validate()
}
