package darray

import (
	"testing"

	"github.com/joshuapare/contig/container/alloc"
)

// BenchmarkArray_Append measures amortized append from empty.
func BenchmarkArray_Append(b *testing.B) {
	var h alloc.Heap[int]
	b.ReportAllocs()

	for range b.N {
		d := New[int]()
		for i := range 4096 {
			if err := d.Append(h, i); err != nil {
				b.Fatal(err)
			}
		}
		d.Release(h)
	}
}

// BenchmarkArray_AppendBump is BenchmarkArray_Append on a bump allocator,
// where growth extends in place.
func BenchmarkArray_AppendBump(b *testing.B) {
	b.ReportAllocs()

	for range b.N {
		bump := alloc.NewBump[int](1<<14, 0)
		d := New[int]()
		for i := range 4096 {
			if err := d.Append(bump, i); err != nil {
				b.Fatal(err)
			}
		}
	}
}

// BenchmarkArray_InsertBulkMiddle measures the shift cost of mid-array inserts.
func BenchmarkArray_InsertBulkMiddle(b *testing.B) {
	var h alloc.Heap[int]
	chunk := []int{1, 2, 3, 4, 5, 6, 7, 8}

	b.ReportAllocs()

	for range b.N {
		d := New[int]()
		for range 256 {
			if err := d.InsertBulkAt(h, chunk, d.Len()/2); err != nil {
				b.Fatal(err)
			}
		}
		d.Release(h)
	}
}
