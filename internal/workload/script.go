package workload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Container kinds.
const (
	ContainerDArray = "darray"
	ContainerLQueue = "lqueue"
	ContainerRing   = "ring"
	ContainerStack  = "stack"
)

// Allocator kinds.
const (
	AllocHeap = "heap"
	AllocBump = "bump"
	AllocMmap = "mmap"
)

// Op kinds.
const (
	OpEnqueue = "enqueue" // append for darray, push for stack
	OpDequeue = "dequeue" // remove from the front; pop for stack
	OpInsert  = "insert"
	OpDelete  = "delete"
	OpCompact = "compact"
	OpPeek    = "peek"
	OpGet     = "get"
)

// Containers lists the accepted container kinds.
var Containers = []string{ContainerDArray, ContainerLQueue, ContainerRing, ContainerStack}

// Allocators lists the accepted allocator kinds.
var Allocators = []string{AllocHeap, AllocBump, AllocMmap}

// supported maps each op to the containers that implement it.
var supported = map[string][]string{
	OpEnqueue: Containers,
	OpDequeue: Containers,
	OpPeek:    Containers,
	OpInsert:  {ContainerDArray},
	OpDelete:  {ContainerDArray},
	OpGet:     {ContainerDArray},
	OpCompact: {ContainerLQueue},
}

// ErrInvalidScript is wrapped by every validation failure.
var ErrInvalidScript = errors.New("workload: invalid script")

// Script is a replayable operation sequence.
type Script struct {
	Container string `yaml:"container"`
	Allocator string `yaml:"allocator,omitempty"`
	Capacity  int    `yaml:"capacity,omitempty"`
	Budget    int    `yaml:"budget,omitempty"`
	Slab      int    `yaml:"slab,omitempty"` // bump slab size in elements
	Ops       []Op   `yaml:"ops"`
}

// Op is one scripted operation.
type Op struct {
	Op     string  `yaml:"op"`
	Values []int64 `yaml:"values,omitempty,flow"`
	Count  int     `yaml:"count,omitempty"`
	Pos    int     `yaml:"pos,omitempty"`
}

// Parse decodes and validates a YAML script. Unknown fields are rejected.
func Parse(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidScript)
		}
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Marshal encodes s as YAML.
func (s *Script) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// Validate checks the header and every op. An empty allocator selects heap.
// Errors name the offending op by index.
func (s *Script) Validate() error {
	if !slices.Contains(Containers, s.Container) {
		return fmt.Errorf("%w: unknown container %q", ErrInvalidScript, s.Container)
	}
	if s.Allocator == "" {
		s.Allocator = AllocHeap
	}
	if !slices.Contains(Allocators, s.Allocator) {
		return fmt.Errorf("%w: unknown allocator %q", ErrInvalidScript, s.Allocator)
	}
	if s.Capacity < 0 || s.Budget < 0 || s.Slab < 0 {
		return fmt.Errorf("%w: capacity, budget and slab must not be negative", ErrInvalidScript)
	}

	for i, op := range s.Ops {
		if err := op.validate(s.Container); err != nil {
			return fmt.Errorf("%w: op %d (%s): %v", ErrInvalidScript, i, op.Op, err)
		}
	}
	return nil
}

func (op Op) validate(container string) error {
	users, ok := supported[op.Op]
	if !ok {
		return errors.New("unknown op")
	}
	if !slices.Contains(users, container) {
		return fmt.Errorf("not supported by %s", container)
	}
	switch op.Op {
	case OpEnqueue, OpInsert:
		if len(op.Values) == 0 {
			return errors.New("values required")
		}
	case OpDequeue:
		if op.Count < 0 {
			return fmt.Errorf("negative count %d", op.Count)
		}
	}
	return nil
}
