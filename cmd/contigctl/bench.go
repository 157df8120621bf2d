package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/contig/container/alloc"
	"github.com/joshuapare/contig/internal/logger"
	"github.com/joshuapare/contig/internal/workload"
)

var (
	benchContainers []string
	benchAllocator  string
	benchOps        int
	benchRuns       int
	benchSeed       int64
	benchCapacity   int
	benchParallel   int
	benchMetrics    bool
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().StringSliceVar(&benchContainers, "container", workload.Containers, "Containers to benchmark")
	cmd.Flags().StringVar(&benchAllocator, "allocator", workload.AllocHeap, "Allocator: heap, bump or mmap")
	cmd.Flags().IntVar(&benchOps, "ops", 10000, "Ops per generated script")
	cmd.Flags().IntVar(&benchRuns, "runs", 4, "Scripts per container, each with its own seed")
	cmd.Flags().Int64Var(&benchSeed, "seed", 1, "Seed of the first script")
	cmd.Flags().IntVar(&benchCapacity, "capacity", 0, "Initial container capacity")
	cmd.Flags().IntVar(&benchParallel, "parallel", runtime.GOMAXPROCS(0), "Scripts run concurrently")
	cmd.Flags().BoolVar(&benchMetrics, "metrics", false, "Print allocator metrics in Prometheus text format")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark generated workloads",
		Long: `The bench command generates random workloads, replays them on every
selected container and reports throughput and allocator activity.

Every run owns its allocator and container, so runs execute concurrently.
FIFO containers (lqueue, ring) are also replayed on github.com/eapache/queue;
any divergence in the observed values fails the benchmark.

Example:
  contigctl bench
  contigctl bench --container ring,lqueue --allocator bump --ops 100000
  contigctl bench --metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
	return cmd
}

// benchRow aggregates the runs of one container.
type benchRow struct {
	Container  string  `json:"container"`
	Allocator  string  `json:"allocator"`
	Runs       int     `json:"runs"`
	Ops        int     `json:"ops"`
	ElapsedNS  int64   `json:"elapsed_ns"`
	OpsPerSec  float64 `json:"ops_per_sec"`
	Allocs     int     `json:"allocs"`
	Extends    int     `json:"extends"`
	Frees      int     `json:"frees"`
	Peak       int     `json:"peak"`
	BaselineNS int64   `json:"baseline_ns,omitempty"`
}

func runBench() error {
	for _, c := range benchContainers {
		if !slices.Contains(workload.Containers, c) {
			return fmt.Errorf("unknown container %q", c)
		}
	}
	if !slices.Contains(workload.Allocators, benchAllocator) {
		return fmt.Errorf("unknown allocator %q", benchAllocator)
	}
	if benchRuns < 1 || benchOps < 1 {
		return fmt.Errorf("--runs and --ops must be positive")
	}

	reg := prometheus.NewRegistry()
	metrics := make([]*alloc.Metrics, len(benchContainers))
	if benchMetrics {
		for i, c := range benchContainers {
			m, err := alloc.NewMetrics(reg, c)
			if err != nil {
				return fmt.Errorf("register metrics for %s: %w", c, err)
			}
			metrics[i] = m
		}
	}

	results := make([][]*workload.Result, len(benchContainers))
	baselines := make([][]time.Duration, len(benchContainers))
	for i := range benchContainers {
		results[i] = make([]*workload.Result, benchRuns)
		baselines[i] = make([]time.Duration, benchRuns)
	}

	var g errgroup.Group
	g.SetLimit(max(benchParallel, 1))
	for ci, c := range benchContainers {
		for r := range benchRuns {
			g.Go(func() error {
				s := workload.Generate(workload.GenOptions{
					Container: c,
					Allocator: benchAllocator,
					Capacity:  benchCapacity,
					Ops:       benchOps,
					Seed:      benchSeed + int64(r),
				})
				res, err := workload.Run(s, workload.WithMetrics(metrics[ci]))
				if err != nil {
					return fmt.Errorf("%s run %d: %w", c, r, err)
				}
				if len(res.Errors) > 0 {
					return fmt.Errorf("%s run %d: %w", c, r, res.Errors[0])
				}
				results[ci][r] = res

				base, err := workload.Baseline(s)
				if errors.Is(err, workload.ErrNoBaseline) {
					return nil
				}
				if err != nil {
					return err
				}
				if !slices.Equal(base.Observed, res.Observed) {
					return fmt.Errorf("%s run %d: observed values diverge from eapache/queue", c, r)
				}
				baselines[ci][r] = base.Elapsed
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	rows := make([]benchRow, len(benchContainers))
	for ci, c := range benchContainers {
		row := benchRow{Container: c, Allocator: benchAllocator, Runs: benchRuns}
		var elapsed, baseline time.Duration
		for r, res := range results[ci] {
			row.Ops += res.Ops
			row.Allocs += res.Stats.Allocs
			row.Extends += res.Stats.Extends
			row.Frees += res.Stats.Frees
			row.Peak = max(row.Peak, res.Stats.Peak)
			elapsed += res.Elapsed
			baseline += baselines[ci][r]
		}
		row.ElapsedNS = elapsed.Nanoseconds()
		row.BaselineNS = baseline.Nanoseconds()
		if elapsed > 0 {
			row.OpsPerSec = float64(row.Ops) / elapsed.Seconds()
		}
		rows[ci] = row
		logger.Info("bench finished", "container", c, "allocator", benchAllocator, "ops", row.Ops, "elapsed", elapsed)
	}

	if jsonOut {
		if err := printJSON(rows); err != nil {
			return err
		}
	} else {
		printBenchText(rows)
	}

	if benchMetrics {
		return writeMetrics(reg)
	}
	return nil
}

func printBenchText(rows []benchRow) {
	printInfo("%-9s %-9s %12s %14s %8s %8s %8s %10s %10s\n",
		"CONTAINER", "ALLOC", "OPS", "OPS/SEC", "ALLOCS", "EXTENDS", "FREES", "PEAK", "VS QUEUE")
	for _, r := range rows {
		ratio := "-"
		if r.BaselineNS > 0 {
			ratio = fmt.Sprintf("%.2fx", float64(r.ElapsedNS)/float64(r.BaselineNS))
		}
		printInfo("%-9s %-9s %12s %14s %8s %8s %8s %10s %10s\n",
			r.Container, r.Allocator, count(r.Ops), count(int(r.OpsPerSec)),
			count(r.Allocs), count(r.Extends), count(r.Frees), count(r.Peak), ratio)
	}
	printVerbose("VS QUEUE is elapsed time relative to github.com/eapache/queue (lower is faster)\n")
}

// writeMetrics prints every gathered family in the Prometheus text format.
func writeMetrics(reg *prometheus.Registry) error {
	mfs, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(os.Stdout, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
