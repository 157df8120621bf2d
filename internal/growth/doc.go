// Package growth implements the growth policy shared by the contig containers.
//
// Every container keeps its live elements as a modular range of a single
// buffer: a start offset and a length. Arrays and linear queues never wrap,
// the ring buffer may. Grow moves such a range into a larger buffer, placing
// it at offset 0 in logical order, and prefers extending the existing buffer
// in place over allocate-copy-free.
//
// Target sizes:
//
//	single-element growth  2c+1            (darray, stack)
//	bulk growth            max(need, c)    (darray bulk operations)
//	hinted growth          2h+1            (lqueue)
//	ring growth            pow2(2h+1)      (ring)
//
// All size arithmetic is overflow-checked; overflow reports ErrOutOfMemory.
package growth
