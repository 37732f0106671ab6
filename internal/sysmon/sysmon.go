// Package sysmon samples host CPU and memory usage for the self-check summary.
package sysmon

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/agbru/bigcalc/internal/format"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent  float64 // 0.0 .. 100.0
	MemPercent  float64 // 0.0 .. 100.0
	MemTotal    uint64  // bytes
	LogicalCPUs int
}

// Sample collects a single system-wide snapshot.
// CPU uses interval=0 (delta since last call). Fields stay zero on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	if n, err := cpu.Counts(true); err == nil {
		s.LogicalCPUs = n
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
		s.MemTotal = vmem.Total
	}
	return s
}

// String renders the snapshot on one line.
func (s Stats) String() string {
	return fmt.Sprintf("cpu %.1f%% of %d cores, mem %.1f%% of %s",
		s.CPUPercent, s.LogicalCPUs, s.MemPercent, format.FormatBytes(s.MemTotal))
}
