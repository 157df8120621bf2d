// Package lqueue provides Queue, a FIFO queue over one contiguous buffer.
//
// Live elements occupy storage[head:tail]. Enqueue writes at tail and
// Dequeue advances head, so the slots before head are waste until the queue
// compacts: Compact shifts the live range down to offset 0.
//
// Growth is waste-aware. When the buffer is full at the tail end the queue
// first checks whether compacting would make enough room; only if it would
// not does it ask the allocator for a larger buffer (2*hint+1 elements,
// extended in place when the allocator allows). Dequeue never compacts.
//
// Queue is not safe for concurrent use.
package lqueue
