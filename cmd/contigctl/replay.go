package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/contig/container/alloc"
	"github.com/joshuapare/contig/internal/logger"
	"github.com/joshuapare/contig/internal/workload"
)

var (
	replayStopOnError bool
	replayStrict      bool
)

func init() {
	cmd := newReplayCmd()
	cmd.Flags().BoolVar(&replayStopOnError, "stop-on-error", false, "Stop a script at its first failing op")
	cmd.Flags().BoolVar(&replayStrict, "strict", false, "Exit non-zero when any op fails")
	rootCmd.AddCommand(cmd)
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <script.yaml>...",
		Short: "Replay workload scripts and report what each container observed",
		Long: `The replay command runs each YAML workload script on a fresh allocator
and container, then prints the values returned by dequeue, delete, peek and
get, the final contents and the allocator activity.

Out-of-bounds and out-of-memory failures are reported per op and do not stop
the script unless --stop-on-error is set.

Example:
  contigctl replay testdata/workloads/ring_wrap.yaml
  contigctl replay --strict testdata/workloads/*.yaml
  contigctl replay --json testdata/workloads/lqueue_waste.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(args)
		},
	}
	return cmd
}

// replayReport is the JSON shape of one replay.
type replayReport struct {
	File      string      `json:"file"`
	Container string      `json:"container"`
	Allocator string      `json:"allocator"`
	Ops       int         `json:"ops"`
	Observed  []int64     `json:"observed"`
	Final     []int64     `json:"final"`
	Len       int         `json:"len"`
	Cap       int         `json:"cap"`
	Errors    []string    `json:"errors"`
	Stats     alloc.Stats `json:"stats"`
	ElapsedNS int64       `json:"elapsed_ns"`
}

func runReplay(args []string) error {
	var opts []workload.RunOption
	if replayStopOnError {
		opts = append(opts, workload.WithStopOnError())
	}

	reports := make([]replayReport, 0, len(args))
	failed := 0
	for _, path := range args {
		printVerbose("Loading script: %s\n", path)
		s, err := workload.Load(path)
		if err != nil {
			return err
		}

		res, err := workload.Run(s, opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if res.Stats.Live != 0 {
			return fmt.Errorf("%s: %d elements still held after release", path, res.Stats.Live)
		}

		for _, e := range res.Errors {
			logger.Debug("op failed", "file", path, "index", e.Index, "op", e.Op, "error", e.Err)
		}
		logger.Info("replay finished",
			"file", path,
			"container", res.Container,
			"allocator", res.Allocator,
			"ops", res.Ops,
			"errors", len(res.Errors),
			"elapsed", res.Elapsed)

		if len(res.Errors) > 0 {
			failed++
		}
		reports = append(reports, newReplayReport(path, res))
	}

	if jsonOut {
		if err := printJSON(reports); err != nil {
			return err
		}
	} else {
		for _, r := range reports {
			printReplayText(r)
		}
	}

	if replayStrict && failed > 0 {
		return fmt.Errorf("%d of %d scripts had failing ops", failed, len(args))
	}
	return nil
}

func newReplayReport(path string, res *workload.Result) replayReport {
	r := replayReport{
		File:      path,
		Container: res.Container,
		Allocator: res.Allocator,
		Ops:       res.Ops,
		Observed:  res.Observed,
		Final:     res.Final,
		Len:       res.Len,
		Cap:       res.Cap,
		Errors:    make([]string, 0, len(res.Errors)),
		Stats:     res.Stats,
		ElapsedNS: res.Elapsed.Nanoseconds(),
	}
	for _, e := range res.Errors {
		r.Errors = append(r.Errors, e.Error())
	}
	return r
}

func printReplayText(r replayReport) {
	printInfo("%s: %s on %s\n", filepath.Base(r.File), r.Container, r.Allocator)
	printInfo("  ops:       %s\n", count(r.Ops))
	printInfo("  observed:  %s\n", joinValues(r.Observed))
	printInfo("  final:     [%s] (len %s, cap %s)\n", joinValues(r.Final), count(r.Len), count(r.Cap))
	printInfo("  errors:    %d\n", len(r.Errors))
	for _, e := range r.Errors {
		printInfo("    %s\n", e)
	}
	printInfo("  allocator: %s allocs, %s extends, %s frees, peak %s\n",
		count(r.Stats.Allocs), count(r.Stats.Extends), count(r.Stats.Frees), count(r.Stats.Peak))
	printVerbose("  elapsed:   %s\n", time.Duration(r.ElapsedNS))
}

func joinValues(vs []int64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}
