package ftq

import "github.com/ericlagergren/decimal"

// Per-worker outcome
type WorkerReport struct {
	ID       int
	Core     int
	Pinned   bool
	Realtime bool
	// Work units over recorded quanta
	Total    uint64
	Warnings []string
	// Platform description captured after the run
	Info []string
}

// Outcome of a run. Samples of worker `i` are in `Buffer.Region(i)`.
type Result struct {
	Config        Config
	TicksPerNs    float64
	TickInterval  uint64
	ClockOverhead uint64
	Buffer        *Buffer
	Workers       []WorkerReport
	TotalCount    uint64
	MaxWork       uint64
	// Run-wide warnings
	Warnings []string
}

// Fraction of the maximal possible work done - TotalCount/MaxWork
func (r *Result) Utilization() float64 {
	return fraction(r.TotalCount, r.MaxWork)
}

func fraction(num, denom uint64) float64 {
	if denom == 0 {
		return 0
	}

	precCtx := decimal.Context128
	bigNum := new(decimal.Big).SetUint64(num)
	bigDenom := new(decimal.Big).SetUint64(denom)
	precCtx.Quo(bigNum, bigNum, bigDenom)

	conv, _ := bigNum.Float64()
	return conv
}
