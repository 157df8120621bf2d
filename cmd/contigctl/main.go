// Command contigctl replays and benchmarks container workloads.
package main

func main() {
	execute()
}
