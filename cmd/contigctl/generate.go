package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/joshuapare/contig/internal/workload"
)

var (
	genContainer string
	genAllocator string
	genOps       int
	genMaxBulk   int
	genSeed      int64
	genCapacity  int
	genOutput    string
)

func init() {
	cmd := newGenerateCmd()
	cmd.Flags().StringVar(&genContainer, "container", workload.ContainerRing, "Container: darray, lqueue, ring or stack")
	cmd.Flags().StringVar(&genAllocator, "allocator", workload.AllocHeap, "Allocator: heap, bump or mmap")
	cmd.Flags().IntVar(&genOps, "ops", 100, "Number of ops")
	cmd.Flags().IntVar(&genMaxBulk, "max-bulk", 8, "Largest enqueue or insert batch")
	cmd.Flags().Int64Var(&genSeed, "seed", 1, "Random seed")
	cmd.Flags().IntVar(&genCapacity, "capacity", 0, "Initial container capacity")
	cmd.Flags().StringVarP(&genOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(cmd)
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random workload script",
		Long: `The generate command writes a random, valid workload script in the
format accepted by replay. The same seed always produces the same script.

Example:
  contigctl generate --container darray --ops 500 --seed 7 -o darray.yaml
  contigctl replay darray.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate()
		},
	}
	return cmd
}

func runGenerate() error {
	if !slices.Contains(workload.Containers, genContainer) {
		return fmt.Errorf("unknown container %q", genContainer)
	}
	s := workload.Generate(workload.GenOptions{
		Container: genContainer,
		Allocator: genAllocator,
		Capacity:  genCapacity,
		Ops:       genOps,
		MaxBulk:   genMaxBulk,
		Seed:      genSeed,
	})
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := s.Marshal()
	if err != nil {
		return err
	}

	if genOutput == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(genOutput, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", genOutput, err)
	}
	printVerbose("Wrote %d ops to %s\n", len(s.Ops), genOutput)
	return nil
}
