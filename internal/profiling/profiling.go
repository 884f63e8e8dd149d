package profiling

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Per-frame CPU timings keyed by section name.

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
	frameCalls  = make(map[string]int)
)

// Track returns a stop function that adds the elapsed time to name.
// Usage: defer profiling.Track("meshing.Build")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		frameCalls[name]++
		mu.Unlock()
	}
}

// ResetFrame clears the current totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	clear(frameCalls)
	mu.Unlock()
}

// Sample is one tracked section.
type Sample struct {
	Name  string
	Total time.Duration
	Calls int
}

// Snapshot returns the current totals, slowest first.
func Snapshot() []Sample {
	mu.Lock()
	out := make([]Sample, 0, len(frameTotals))
	for k, v := range frameTotals {
		out = append(out, Sample{Name: k, Total: v, Calls: frameCalls[k]})
	}
	mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total == out[j].Total {
			return out[i].Name < out[j].Name
		}
		return out[i].Total > out[j].Total
	})
	return out
}

// Fields renders the n slowest sections as log fields.
func Fields(n int) []zap.Field {
	ss := Snapshot()
	if n > len(ss) {
		n = len(ss)
	}
	fields := make([]zap.Field, 0, n)
	for _, s := range ss[:n] {
		fields = append(fields, zap.Duration(s.Name, s.Total))
	}
	return fields
}

// TopN formats the n slowest sections, e.g. "app.setup:4.2ms, meshing.Build:2.1ms".
func TopN(n int) string {
	ss := Snapshot()
	if n > len(ss) {
		n = len(ss)
	}
	var b []byte
	for i, s := range ss[:n] {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = append(b, s.Name...)
		b = append(b, ':')
		b = strconv.AppendFloat(b, float64(s.Total.Microseconds())/1000.0, 'f', 1, 64)
		b = append(b, "ms"...)
	}
	return string(b)
}
