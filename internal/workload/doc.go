// Package workload replays scripted operation sequences against the
// containers.
//
// A Script names a container, an allocator and a list of operations. Scripts
// are written in YAML:
//
//	container: ring        # darray | lqueue | ring | stack
//	allocator: bump        # heap | bump | mmap
//	capacity: 4
//	budget: 0              # live-element ceiling, 0 = unlimited
//	ops:
//	  - {op: enqueue, values: [1, 2, 3]}
//	  - {op: dequeue, count: 2}
//	  - {op: peek}
//
// Run executes a script on a fresh allocator and container and reports the
// observed values, the final contents and the allocator Stats. Generate
// produces random scripts for benchmarking, and Baseline replays FIFO
// scripts on github.com/eapache/queue for comparison.
package workload
