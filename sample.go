package ftq

import "unsafe"

// Start of a quantum (in ticks) and number of work units completed in it
type Sample struct {
	Timestamp uint64
	Count     uint64
}

// Samples of one worker
type Region []Sample

func (r Region) Total() uint64 {
	var total uint64
	for _, s := range r {
		total += s.Count
	}
	return total
}

func (r Region) MaxCount() uint64 {
	var maxCount uint64
	for _, s := range r {
		maxCount = max(maxCount, s.Count)
	}
	return maxCount
}

// Flat storage of all samples partitioned into contiguous per-thread regions.
// A region is written by its worker only and read after all workers have finished.
type Buffer struct {
	samples   []Sample
	threads   int
	perThread int
}

func NewBuffer(threads, perThread int) *Buffer {
	return &Buffer{
		samples:   make([]Sample, threads*perThread),
		threads:   threads,
		perThread: perThread,
	}
}

// View of thread `t` samples; capacity is limited to the region
func (b *Buffer) Region(t int) Region {
	lo, hi := t*b.perThread, (t+1)*b.perThread
	return Region(b.samples[lo:hi:hi])
}

func (b *Buffer) Threads() int {
	return b.threads
}

func (b *Buffer) PerThread() int {
	return b.perThread
}

// Raw memory of the buffer for locking
func (b *Buffer) bytes() []byte {
	if len(b.samples) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&b.samples[0])), len(b.samples)*int(unsafe.Sizeof(Sample{})))
}
