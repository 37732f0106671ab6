// Package metrics collects runtime and arithmetic statistics: a Prometheus
// registry for operation and self-check counters, and point-in-time memory
// readings for run summaries.
package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	TotalAlloc   uint64 // cumulative bytes allocated
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}

// MemoryUsage summarizes allocation activity between two snapshots.
type MemoryUsage struct {
	Allocated    uint64 // bytes allocated in the interval
	PeakHeap     uint64 // heap in use at the end of the interval
	GCCycles     uint32
	PauseTotalNs uint64
}

// Since returns the allocation activity from before to s.
func (s MemorySnapshot) Since(before MemorySnapshot) MemoryUsage {
	return MemoryUsage{
		Allocated:    s.TotalAlloc - before.TotalAlloc,
		PeakHeap:     s.HeapAlloc,
		GCCycles:     s.NumGC - before.NumGC,
		PauseTotalNs: s.PauseTotalNs - before.PauseTotalNs,
	}
}
