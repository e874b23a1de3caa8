package ftq

import (
	"testing"

	"github.com/aknopov/ftq/mocker"
	"github.com/stretchr/testify/assert"
)

// Work unit that costs exactly one tick of the clock
func tickingWork(clock *mocker.Clock) func(*uint64) {
	return func(acc *uint64) {
		*acc++
		clock.Advance(1)
	}
}

func TestWorkUnit(t *testing.T) {
	assertT := assert.New(t)

	var acc uint64
	for i := 0; i < 5; i++ {
		workUnit(&acc)
	}
	assertT.Equal(uint64(5), acc)
}

func TestSamplerOneTickWork(t *testing.T) {
	assertT := assert.New(t)

	clock := mocker.NewClock(0, 0)
	defer mocker.ReplaceItem(&workUnitF, tickingWork(clock))()

	sampler := NewSampler(clock, 1000)
	sampler.Warmup(5)
	assertT.Equal(uint64(5000), clock.Peek())

	region := make(Region, 5)
	total := sampler.Record(region)

	assertT.Equal(uint64(5000), total)
	for i, s := range region {
		assertT.Equal(uint64(1000), s.Count)
		assertT.Equal(uint64(5000+1000*i), s.Timestamp)
	}
}

func TestSamplerCountsReads(t *testing.T) {
	assertT := assert.New(t)

	// every read advances the clock; the first read of a quantum does no work
	clock := mocker.NewClock(0, 1)
	sampler := NewSampler(clock, 100)

	region := make(Region, 10)
	total := sampler.Record(region)

	assertT.Equal(uint64(990), total)
	for i, s := range region {
		assertT.Equal(uint64(99), s.Count)
		assertT.Equal(uint64(1+100*i), s.Timestamp)
	}
}

func TestSamplerMissedQuanta(t *testing.T) {
	assertT := assert.New(t)

	clock := mocker.NewClock(0, 25)
	sampler := NewSampler(clock, 10)

	region := make(Region, 4)
	assertT.Zero(sampler.Record(region))

	prev := uint64(0)
	for _, s := range region {
		assertT.Zero(s.Count)
		assertT.GreaterOrEqual(s.Timestamp, prev)
		prev = s.Timestamp
	}
}

func TestSamplerRollingEnd(t *testing.T) {
	assertT := assert.New(t)

	// a stall in the first quantum shortens the following ones
	clock := mocker.NewClock(0, 0)
	stalled := false
	work := func(acc *uint64) {
		*acc++
		clock.Advance(1)
		if !stalled {
			stalled = true
			clock.Advance(150)
		}
	}
	defer mocker.ReplaceItem(&workUnitF, work)()

	sampler := NewSampler(clock, 100)
	region := make(Region, 3)
	sampler.Record(region)

	assertT.Equal([]uint64{1, 49, 100}, []uint64{region[0].Count, region[1].Count, region[2].Count})
}
