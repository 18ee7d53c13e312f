package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"
)

// LatencyStats summarizes a set of durations.
type LatencyStats struct {
	P50Ms float64
	P95Ms float64
	P99Ms float64
	AvgMs float64
	N     int
}

// SweepRow is one split-threshold setting of the sweep command.
type SweepRow struct {
	SplitThreshold int
	Storage        string
	PointCount     int
	Nodes          int
	MaxDepth       int
	RebuildP50Ms   float64
	RebuildP99Ms   float64
	SearchP50Ms    float64
	HeapAllocMB    float64
}

// SimulateRow is one scale of the simulate command.
type SimulateRow struct {
	PointCount     int
	Ticks          int
	Storage        string
	TickP50Ms      float64
	TickP99Ms      float64
	AvgNodes       float64
	AllocsPerTick  float64
	GCPerKiloTicks float64
}

// ParallelRow compares serial and parallel rebuilds at one worker cap.
type ParallelRow struct {
	Workers       int
	PointCount    int
	SerialP50Ms   float64
	ParallelP50Ms float64
	Speedup       float64
	NumGoroutine  int
}

// Percentile returns the p-th percentile (0-100) of sorted.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	idx := int(float64(len(sorted)-1) * p / 100)
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

// LatencyStatsFromDurations computes P50/P95/P99 and the mean.
func LatencyStatsFromDurations(durations []time.Duration) LatencyStats {
	if len(durations) == 0 {
		return LatencyStats{}
	}
	ms := make([]float64, len(durations))
	var sum float64
	for i, d := range durations {
		ms[i] = float64(d.Nanoseconds()) / 1e6
		sum += ms[i]
	}
	slices.Sort(ms)
	return LatencyStats{
		P50Ms: Percentile(ms, 50),
		P95Ms: Percentile(ms, 95),
		P99Ms: Percentile(ms, 99),
		AvgMs: sum / float64(len(ms)),
		N:     len(ms),
	}
}

func f2(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// WriteSweepCSV writes the sweep report.
func WriteSweepCSV(rows []SweepRow, path string) error {
	out := [][]string{{"SplitThreshold", "Storage", "PointCount", "Nodes", "MaxDepth", "RebuildP50Ms", "RebuildP99Ms", "SearchP50Ms", "HeapAllocMB"}}
	for _, r := range rows {
		out = append(out, []string{
			strconv.Itoa(r.SplitThreshold),
			r.Storage,
			strconv.Itoa(r.PointCount),
			strconv.Itoa(r.Nodes),
			strconv.Itoa(r.MaxDepth),
			f2(r.RebuildP50Ms),
			f2(r.RebuildP99Ms),
			f2(r.SearchP50Ms),
			f2(r.HeapAllocMB),
		})
	}
	return writeCSV(out, path)
}

// WriteSimulateCSV writes the simulate report.
func WriteSimulateCSV(rows []SimulateRow, path string) error {
	out := [][]string{{"PointCount", "Ticks", "Storage", "TickP50Ms", "TickP99Ms", "AvgNodes", "AllocsPerTick", "GCPerKiloTicks"}}
	for _, r := range rows {
		out = append(out, []string{
			strconv.Itoa(r.PointCount),
			strconv.Itoa(r.Ticks),
			r.Storage,
			f2(r.TickP50Ms),
			f2(r.TickP99Ms),
			f2(r.AvgNodes),
			f2(r.AllocsPerTick),
			f2(r.GCPerKiloTicks),
		})
	}
	return writeCSV(out, path)
}

// WriteParallelCSV writes the parallel report.
func WriteParallelCSV(rows []ParallelRow, path string) error {
	out := [][]string{{"Workers", "PointCount", "SerialP50Ms", "ParallelP50Ms", "Speedup", "NumGoroutine"}}
	for _, r := range rows {
		out = append(out, []string{
			strconv.Itoa(r.Workers),
			strconv.Itoa(r.PointCount),
			f2(r.SerialP50Ms),
			f2(r.ParallelP50Ms),
			f2(r.Speedup),
			strconv.Itoa(r.NumGoroutine),
		})
	}
	return writeCSV(out, path)
}

func writeCSV(records [][]string, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReportPath returns dir/prefix<date>.csv.
func ReportPath(dir, prefix string) string {
	return filepath.Join(dir, prefix+time.Now().Format("20060102")+".csv")
}

// WriteJSON writes v as indented JSON.
func WriteJSON(v any, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
