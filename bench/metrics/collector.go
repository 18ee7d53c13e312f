// Package metrics collects runtime snapshots and writes bench reports.
package metrics

import (
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/cpu"
)

// Snapshot is a point-in-time view of the Go runtime.
type Snapshot struct {
	TS           time.Time
	HeapAlloc    uint64
	HeapSys      uint64
	HeapReleased uint64
	Mallocs      uint64
	NumGC        uint32
	NumGoroutine int
}

// Take captures the current runtime statistics.
func Take() Snapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Snapshot{
		TS:           time.Now(),
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		HeapReleased: m.HeapReleased,
		Mallocs:      m.Mallocs,
		NumGC:        m.NumGC,
		NumGoroutine: runtime.NumGoroutine(),
	}
}

// GC forces a collection and returns freed memory to the OS.
func GC() {
	runtime.GC()
	debug.FreeOSMemory()
}

// Diff returns the allocation rate (bytes/s) and GC count between two snapshots.
func Diff(before, after Snapshot) (allocRateBps float64, gcDelta uint32) {
	elapsed := after.TS.Sub(before.TS).Seconds()
	if elapsed <= 0 {
		return 0, 0
	}
	allocDelta := int64(after.HeapAlloc) - int64(before.HeapAlloc)
	if allocDelta < 0 {
		allocDelta = 0
	}
	allocRateBps = float64(allocDelta) / elapsed
	if after.NumGC >= before.NumGC {
		gcDelta = after.NumGC - before.NumGC
	}
	return allocRateBps, gcDelta
}

// MallocsPer returns heap allocations per operation between two snapshots.
func MallocsPer(before, after Snapshot, ops int) float64 {
	if ops <= 0 || after.Mallocs < before.Mallocs {
		return 0
	}
	return float64(after.Mallocs-before.Mallocs) / float64(ops)
}

// CPUDescription names the architecture and the SIMD features the host reports,
// for tagging reports produced on different machines.
func CPUDescription() string {
	var feats []string
	switch runtime.GOARCH {
	case "amd64", "386":
		if cpu.X86.HasSSE41 {
			feats = append(feats, "sse4.1")
		}
		if cpu.X86.HasAVX2 {
			feats = append(feats, "avx2")
		}
		if cpu.X86.HasAVX512F {
			feats = append(feats, "avx512f")
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			feats = append(feats, "asimd")
		}
		if cpu.ARM64.HasSVE {
			feats = append(feats, "sve")
		}
	}
	desc := runtime.GOARCH + "/" + runtime.GOOS + " cpus=" + strconv.Itoa(runtime.NumCPU())
	if len(feats) > 0 {
		desc += " " + strings.Join(feats, ",")
	}
	return desc
}
