package ftq

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestRegionStats(t *testing.T) {
	assertT := assert.New(t)

	region := Region{{0, 3}, {10, 7}, {20, 0}, {30, 5}}
	assertT.Equal(uint64(15), region.Total())
	assertT.Equal(uint64(7), region.MaxCount())

	assertT.Zero(Region{}.Total())
	assertT.Zero(Region{}.MaxCount())
}

func TestBufferRegions(t *testing.T) {
	assertT := assert.New(t)

	buf := NewBuffer(3, 4)
	assertT.Equal(3, buf.Threads())
	assertT.Equal(4, buf.PerThread())

	for i := 0; i < buf.Threads(); i++ {
		region := buf.Region(i)
		assertT.Len(region, 4)
		assertT.Equal(4, cap(region))
		for j := range region {
			region[j] = Sample{Timestamp: uint64(j), Count: uint64(i + 1)}
		}
	}

	for i := 0; i < buf.Threads(); i++ {
		assertT.Equal(uint64(4*(i+1)), buf.Region(i).Total())
	}

	// growing a region must not spill into the next one
	grown := append(buf.Region(0), Sample{Count: 100})
	assertT.Len(grown, 5)
	assertT.Equal(uint64(2), buf.Region(1)[0].Count)
}

func TestBufferBytes(t *testing.T) {
	assertT := assert.New(t)

	buf := NewBuffer(2, 5)
	raw := buf.bytes()
	assertT.Len(raw, 10*int(unsafe.Sizeof(Sample{})))

	assertT.Same(&buf.samples[0], (*Sample)(unsafe.Pointer(&raw[0])))

	assertT.Nil(NewBuffer(0, 5).bytes())
}
