package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Lightweight per-frame CPU profiler for tick-level insights.

// Sample is the accumulated cost of one tracked name within a frame.
type Sample struct {
	Name  string
	Total time.Duration
	Calls int
}

// Profiler accumulates durations by name until the next Reset.
type Profiler struct {
	mu      sync.Mutex
	samples map[string]*Sample
}

// New returns an empty profiler.
func New() *Profiler {
	return &Profiler{samples: make(map[string]*Sample)}
}

var std = New()

// Track returns a stop function that records the elapsed time under name.
// Usage: defer p.Track("subsystem.Operation")()
func (p *Profiler) Track(name string) func() {
	start := time.Now()
	return func() {
		p.add(name, time.Since(start))
	}
}

func (p *Profiler) add(name string, d time.Duration) {
	p.mu.Lock()
	s, ok := p.samples[name]
	if !ok {
		s = &Sample{Name: name}
		p.samples[name] = s
	}
	s.Total += d
	s.Calls++
	p.mu.Unlock()
}

// Reset clears the current totals. Call at the start of each frame.
func (p *Profiler) Reset() {
	p.mu.Lock()
	clear(p.samples)
	p.mu.Unlock()
}

// Samples returns a copy of the current totals, most expensive first.
func (p *Profiler) Samples() []Sample {
	p.mu.Lock()
	out := make([]Sample, 0, len(p.samples))
	for _, s := range p.samples {
		out = append(out, *s)
	}
	p.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// TopN formats the n most expensive entries.
// Example: "meshing.Build:4.2ms(x1), physics.Raycast:0.1ms(x2)"
func (p *Profiler) TopN(n int) string {
	list := p.Samples()
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for _, s := range list[:n] {
		ms := float64(s.Total.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms(x%d)", s.Name, ms, s.Calls))
	}
	return strings.Join(parts, ", ")
}

// Track records into the process-wide profiler.
func Track(name string) func() { return std.Track(name) }

// ResetFrame clears the process-wide profiler.
func ResetFrame() { std.Reset() }

// Snapshot returns the process-wide totals, most expensive first.
func Snapshot() []Sample { return std.Samples() }

// TopN formats the process-wide top n entries.
func TopN(n int) string { return std.TopN(n) }
