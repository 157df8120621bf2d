// Package ring provides Buffer, a growable FIFO ring buffer.
//
// Live elements occupy the modular range of length Len starting at head,
// wrapping from the end of the buffer back to index 0. Dequeue advances head
// modulo the capacity, so the buffer never accumulates waste and never needs
// compaction.
//
// Physical slots are computed with a bitmask when the capacity is a power of
// two and with a true modulo otherwise. WithCapacity honors any requested
// capacity; growth always lands on a power of two, 2*hint+1 rounded up, and
// un-wraps the live range to offset 0.
//
// Buffer is not safe for concurrent use.
package ring
